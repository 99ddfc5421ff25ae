// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// AIFFDecoder decodes AIFF/AIFC PCM files via github.com/go-audio/aiff.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.ReadSeeker) (Stream, error) {
	dec, err := newAiffReader(r)
	if err != nil {
		return nil, err
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit aiff", ErrUnsupportedDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("%w: aiff without COMM chunk", ErrInvalidFile)
	}

	return &aiffStream{
		r:          r,
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		frames:     int64(dec.NumSampleFrames),
	}, nil
}

func newAiffReader(r io.ReadSeeker) (*goaiff.Decoder, error) {
	dec := goaiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an aiff file", ErrInvalidFile)
	}
	dec.ReadInfo()
	return dec, nil
}

type aiffStream struct {
	r          io.ReadSeeker
	dec        *goaiff.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	pos        int64
	intBuf     *goaudio.IntBuffer
}

func (s *aiffStream) SampleRate() int { return s.sampleRate }
func (s *aiffStream) Channels() int   { return s.channels }
func (s *aiffStream) Frames() int64   { return s.frames }
func (s *aiffStream) Close() error    { return nil }

func (s *aiffStream) Read(dst []float32) (int, error) {
	need := (len(dst) / s.channels) * s.channels
	if need == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < need {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, need),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:need]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading aiff pcm: %w", err)
		}
		return 0, io.EOF
	}

	scale := float32(int64(1) << (s.bitDepth - 1))
	for i := 0; i < n; i++ {
		dst[i] = float32(s.intBuf.Data[i]) / scale
	}

	frames := n / s.channels
	s.pos += int64(frames)

	if err != nil && err != io.EOF {
		return frames, fmt.Errorf("reading aiff pcm: %w", err)
	}
	if n < need || err == io.EOF {
		return frames, io.EOF
	}
	return frames, nil
}

// Seek rewinds by re-parsing the container when moving backwards, then skips
// forward frame by frame, same as the wav path.
func (s *aiffStream) Seek(frame int64) error {
	if frame < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSeek, frame)
	}
	if frame < s.pos {
		if _, err := s.r.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding aiff: %w", err)
		}
		dec, err := newAiffReader(s.r)
		if err != nil {
			return err
		}
		s.dec = dec
		s.pos = 0
	}

	skip := frame - s.pos
	if err := discardFrames(s, skip); err != nil {
		return fmt.Errorf("seeking aiff: %w", err)
	}
	return nil
}
