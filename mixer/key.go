// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

// Any is the wildcard value for GetSimilar lookups. It is never valid in a
// stored key.
const Any = -1

// Key identifies a hardware output stream format.
type Key struct {
	SampleRate int
	Channels   int
	BlockSize  int
}

// String renders the key as rate_channels_blockSize, e.g. "44100_2_128".
func (k Key) String() string {
	return fmt.Sprintf("%d_%d_%d", k.SampleRate, k.Channels, k.BlockSize)
}

// concrete reports whether every field holds a usable value. Stored keys are
// always concrete; only lookup requests may carry wildcards.
func (k Key) concrete() bool {
	return k.SampleRate > 0 && k.Channels > 0 && k.BlockSize > 0
}

// matches reports whether a stored key satisfies a lookup request. Request
// fields set to Any match anything; all other fields must be equal.
func (k Key) matches(req Key) bool {
	if req.SampleRate != Any && req.SampleRate != k.SampleRate {
		return false
	}
	if req.Channels != Any && req.Channels != k.Channels {
		return false
	}
	if req.BlockSize != Any && req.BlockSize != k.BlockSize {
		return false
	}
	return true
}
