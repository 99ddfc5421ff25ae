// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	// ErrConcurrentStream is returned when the platform supports only one
	// concurrent hardware stream and a different format was requested while
	// one is already open. Callers may recover by falling back to
	// GetSimilar.
	ErrConcurrentStream = errors.New("platform does not support concurrent output streams")

	// ErrInvalidFormat is returned for stream requests whose sample rate,
	// channel count or block size is not a positive integer.
	ErrInvalidFormat = errors.New("invalid stream format")

	// ErrRegistryClosed is returned when a stream is requested after the
	// registry was torn down.
	ErrRegistryClosed = errors.New("stream registry is closed")
)
