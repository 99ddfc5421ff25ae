// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WAVDecoder decodes RIFF/WAVE PCM files via github.com/go-audio/wav.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.ReadSeeker) (Stream, error) {
	dec, err := newWavReader(r)
	if err != nil {
		return nil, err
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit wav", ErrUnsupportedDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	bytesPerFrame := int64(channels * bitDepth / 8)
	frames := int64(-1)
	if l := dec.PCMLen(); l > 0 && bytesPerFrame > 0 {
		frames = l / bytesPerFrame
	}

	return &wavStream{
		r:          r,
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
		frames:     frames,
	}, nil
}

func newWavReader(r io.ReadSeeker) (*gowav.Decoder, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", ErrInvalidFile)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav pcm chunk: %w", err)
	}
	return dec, nil
}

type wavStream struct {
	r          io.ReadSeeker
	dec        *gowav.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	pos        int64
	intBuf     *goaudio.IntBuffer
}

func (s *wavStream) SampleRate() int { return s.sampleRate }
func (s *wavStream) Channels() int   { return s.channels }
func (s *wavStream) Frames() int64   { return s.frames }
func (s *wavStream) Close() error    { return nil }

func (s *wavStream) Read(dst []float32) (int, error) {
	need := (len(dst) / s.channels) * s.channels
	if need == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < need {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, need),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
		}
	}
	s.intBuf.Data = s.intBuf.Data[:need]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading wav pcm: %w", err)
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
		return frames, fmt.Errorf("reading wav pcm: %w", err)
	}
	if n < need || err == io.EOF {
		return frames, io.EOF
	}
	return frames, nil
}

// Seek rewinds by re-parsing the container when moving backwards, then skips
// forward frame by frame. go-audio exposes no random access into the data
// chunk.
func (s *wavStream) Seek(frame int64) error {
	if frame < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSeek, frame)
	}
	if frame < s.pos {
		if _, err := s.r.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding wav: %w", err)
		}
		dec, err := newWavReader(s.r)
		if err != nil {
			return err
		}
		s.dec = dec
		s.pos = 0
	}

	skip := frame - s.pos
	if err := discardFrames(s, skip); err != nil {
		return fmt.Errorf("seeking wav: %w", err)
	}
	return nil
}
