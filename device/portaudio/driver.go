// SPDX-License-Identifier: EPL-2.0

package portaudio

import (
	"fmt"
	"runtime"

	pa "github.com/gordonklaus/portaudio"

	"github.com/Brit1317/sndmix/device"
)

// Driver plays through the default PortAudio output device.
type Driver struct{}

// New initializes the PortAudio runtime. Callers own the returned driver and
// must Close it to terminate PortAudio.
func New() (*Driver, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	return &Driver{}, nil
}

// Open opens an output-only stream on the default device. The stream is not
// started.
func (d *Driver) Open(sampleRate, channels, blockSize int, cb device.Callback) (device.Stream, error) {
	paCB := func(out []float32, info pa.StreamCallbackTimeInfo, flags pa.StreamCallbackFlags) {
		cb(out, len(out)/channels, device.TimeInfo{
			Current:   info.CurrentTime,
			OutputDAC: info.OutputBufferDacTime,
		}, mapFlags(flags))
	}

	st, err := pa.OpenDefaultStream(0, channels, float64(sampleRate), blockSize, paCB)
	if err != nil {
		return nil, fmt.Errorf("opening portaudio stream: %w", err)
	}
	return &stream{st: st}, nil
}

// SingleStream reports whether only one concurrent output stream is allowed.
// The common PortAudio hosts on Windows (MME, WASAPI exclusive) cannot hold a
// second stream with a different format.
func (d *Driver) SingleStream() bool {
	return runtime.GOOS == "windows"
}

// Close terminates the PortAudio runtime.
func (d *Driver) Close() error {
	if err := pa.Terminate(); err != nil {
		return fmt.Errorf("terminating portaudio: %w", err)
	}
	return nil
}

func mapFlags(f pa.StreamCallbackFlags) device.Flags {
	var out device.Flags
	if f&pa.OutputUnderflow != 0 {
		out |= device.OutputUnderflow
	}
	if f&pa.OutputOverflow != 0 {
		out |= device.OutputOverflow
	}
	if f&pa.PrimingOutput != 0 {
		out |= device.PrimingOutput
	}
	return out
}

type stream struct {
	st *pa.Stream
}

func (s *stream) Start() error { return s.st.Start() }
func (s *stream) Stop() error  { return s.st.Stop() }
func (s *stream) Close() error { return s.st.Close() }
