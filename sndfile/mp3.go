// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/Brit1317/sndmix/utils"
)

// mp3 output is always 16-bit stereo, so one frame is four bytes.
const mp3BytesPerFrame = 4

// MP3Decoder decodes MPEG-1 layer 3 files via github.com/hajimehoshi/go-mp3.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.ReadSeeker) (Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	frames := int64(-1)
	if l := dec.Length(); l > 0 {
		frames = l / mp3BytesPerFrame
	}

	return &mp3Stream{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		frames:     frames,
	}, nil
}

type mp3Stream struct {
	dec        *gomp3.Decoder
	sampleRate int
	frames     int64
	byteBuf    []byte
}

func (s *mp3Stream) SampleRate() int { return s.sampleRate }
func (s *mp3Stream) Channels() int   { return 2 }
func (s *mp3Stream) Frames() int64   { return s.frames }
func (s *mp3Stream) Close() error    { return nil }

func (s *mp3Stream) Read(dst []float32) (int, error) {
	frames := len(dst) / 2
	if frames == 0 {
		return 0, nil
	}

	need := frames * mp3BytesPerFrame
	if cap(s.byteBuf) < need {
		s.byteBuf = make([]byte, need)
	}
	s.byteBuf = s.byteBuf[:need]

	n, err := io.ReadFull(s.dec, s.byteBuf)
	got := n / mp3BytesPerFrame
	for i := 0; i < got*2; i++ {
		raw := int16(binary.LittleEndian.Uint16(s.byteBuf[i*2:]))
		dst[i] = utils.Int16ToFloat32(raw)
	}

	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return got, io.EOF
	}
	if err != nil {
		return got, fmt.Errorf("reading mp3 pcm: %w", err)
	}
	return got, nil
}

// Seek maps the frame index onto the decoder's byte offset. go-mp3 exposes
// random access directly, no rewind needed.
func (s *mp3Stream) Seek(frame int64) error {
	if frame < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSeek, frame)
	}
	if s.frames >= 0 && frame > s.frames {
		frame = s.frames
	}
	if _, err := s.dec.Seek(frame*mp3BytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("seeking mp3: %w", err)
	}
	return nil
}
