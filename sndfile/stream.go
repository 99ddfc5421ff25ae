// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"errors"
	"io"
)

// Reader is the minimal pull contract shared by decoded files and the
// processing stages that wrap them (Resampler, MonoMixer).
type Reader interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// Read fills dst with interleaved float32 samples in [-1, 1] and
	// returns the number of frames read. io.EOF signals end of material,
	// possibly alongside a final short read.
	Read(dst []float32) (int, error)
}

// Stream is a decoded audio file: a Reader with random access and a known
// (when the container provides it) total length.
type Stream interface {
	Reader

	// Frames reports the total PCM frame count, or -1 when the container
	// does not carry it.
	Frames() int64

	// Seek positions the read cursor at the given frame index. Seeking past
	// the end is clamped, not an error.
	Seek(frame int64) error

	// Close releases decoder resources. It does not close the underlying
	// reader.
	Close() error
}

// Decoder constructs a Stream from raw container bytes.
type Decoder interface {
	Decode(r io.ReadSeeker) (Stream, error)
}

// ReadAll drains src and returns every interleaved sample.
func ReadAll(src Reader) ([]float32, error) {
	var out []float32
	buf := make([]float32, 4096*src.Channels())

	for {
		n, err := src.Read(buf)
		if n > 0 {
			out = append(out, buf[:n*src.Channels()]...)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}

// discardFrames reads and drops n frames from s. Hitting end of material
// early is not an error; the cursor simply rests at the end.
func discardFrames(s Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	buf := make([]float32, 1024*s.Channels())

	for n > 0 {
		chunk := int64(1024)
		if chunk > n {
			chunk = n
		}
		got, err := s.Read(buf[:chunk*int64(s.Channels())])
		n -= int64(got)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if got == 0 {
			return nil
		}
	}
	return nil
}
