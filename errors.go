// SPDX-License-Identifier: EPL-2.0

package sndmix

import "errors"

var (
	// ErrSoundFormat means no output stream compatible with the requested
	// format could be obtained.
	ErrSoundFormat = errors.New("no compatible output stream for sound format")

	// ErrUnknownNote means a note name could not be parsed.
	ErrUnknownNote = errors.New("unknown note name")
)
