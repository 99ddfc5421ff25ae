// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis files via github.com/jfreymuth/oggvorbis.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.ReadSeeker) (Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return &vorbisStream{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frames:     dec.Length(),
	}, nil
}

type vorbisStream struct {
	dec        *oggvorbis.Reader
	sampleRate int
	channels   int
	frames     int64
}

func (s *vorbisStream) SampleRate() int { return s.sampleRate }
func (s *vorbisStream) Channels() int   { return s.channels }
func (s *vorbisStream) Frames() int64   { return s.frames }
func (s *vorbisStream) Close() error    { return nil }

func (s *vorbisStream) Read(dst []float32) (int, error) {
	need := (len(dst) / s.channels) * s.channels
	if need == 0 {
		return 0, nil
	}

	// oggvorbis counts individual float samples, not frames, and may return
	// short reads mid-stream.
	n, err := s.dec.Read(dst[:need])
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading vorbis pcm: %w", err)
		}
		return 0, io.EOF
	}

	frames := n / s.channels
	if err == io.EOF {
		return frames, io.EOF
	}
	if err != nil {
		return frames, fmt.Errorf("reading vorbis pcm: %w", err)
	}
	return frames, nil
}

// Seek uses the library's native sample positioning.
func (s *vorbisStream) Seek(frame int64) error {
	if frame < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSeek, frame)
	}
	if s.frames >= 0 && frame > s.frames {
		frame = s.frames
	}
	if err := s.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("seeking vorbis: %w", err)
	}
	return nil
}
