// SPDX-License-Identifier: EPL-2.0

package device

import "time"

// TimeInfo carries the driver's timing snapshot for one callback invocation.
type TimeInfo struct {
	// Current is the driver clock at the time the callback fired.
	Current time.Duration
	// OutputDAC is the driver clock at which the first sample of the output
	// buffer will hit the converter.
	OutputDAC time.Duration
}

// Flags reports exceptional conditions the driver observed for a callback.
type Flags uint32

const (
	// OutputUnderflow means the driver ran out of data before the deadline
	// and inserted silence.
	OutputUnderflow Flags = 1 << iota
	// OutputOverflow means output data was discarded.
	OutputOverflow
	// PrimingOutput means the buffer is being filled before playback starts;
	// its contents may never be heard.
	PrimingOutput
)

// Callback produces one block of interleaved output samples. It is invoked by
// the driver on a real-time thread once per hardware tick; out holds
// frames*channels float32 slots. Implementations must not block.
type Callback func(out []float32, frames int, info TimeInfo, flags Flags)

// Driver is the hardware output collaborator. Exactly one implementation
// talks to real hardware; tests substitute a fake.
type Driver interface {
	// Open creates (but does not start) an output stream with the given
	// format, wired to cb.
	Open(sampleRate, channels, blockSize int, cb Callback) (Stream, error)

	// SingleStream reports whether the platform supports only one concurrent
	// hardware output stream.
	SingleStream() bool

	// Close releases the driver. All streams must be closed first.
	Close() error
}

// Stream is one open hardware output stream. The zero number of sounds is
// fine; a started stream keeps invoking its callback until stopped.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}
