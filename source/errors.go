// SPDX-License-Identifier: EPL-2.0

package source

import "errors"

var (
	ErrFrequencyRange = errors.New("tone frequency outside audible range")
	ErrBadSampleRate  = errors.New("sample rate must be positive")
	ErrBadChannels    = errors.New("channel count must be positive")
	ErrRaggedSamples  = errors.New("sample count not a multiple of channels")
	ErrSeekRange      = errors.New("seek frame outside material")
)
