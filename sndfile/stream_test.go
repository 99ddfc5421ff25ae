// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"io"
	"math"
	"testing"
)

// sliceReader serves interleaved samples from memory, optionally in short
// chunks to exercise partial-read handling.
type sliceReader struct {
	rate     int
	channels int
	data     []float32
	pos      int
	maxChunk int // frames per read, 0 = unlimited
}

func (s *sliceReader) SampleRate() int { return s.rate }
func (s *sliceReader) Channels() int   { return s.channels }

func (s *sliceReader) Read(dst []float32) (int, error) {
	want := len(dst) / s.channels
	if s.maxChunk > 0 && want > s.maxChunk {
		want = s.maxChunk
	}
	avail := (len(s.data) - s.pos) / s.channels
	if avail == 0 {
		return 0, io.EOF
	}
	if want > avail {
		want = avail
	}
	copy(dst, s.data[s.pos:s.pos+want*s.channels])
	s.pos += want * s.channels
	if s.pos == len(s.data) {
		return want, io.EOF
	}
	return want, nil
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	data := make([]float32, 10000)
	for i := range data {
		data[i] = float32(math.Sin(float64(i) / 100))
	}

	src := &sliceReader{rate: 44100, channels: 2, data: data, maxChunk: 300}
	got, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("ReadAll() returned %d samples, want %d", len(got), len(data))
	}
	for i := range got {
		if got[i] != data[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestDiscardFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frames    int64
		wantLeft  int
		wantError bool
	}{
		{name: "skip some", frames: 100, wantLeft: 400},
		{name: "skip zero", frames: 0, wantLeft: 500},
		{name: "skip past end", frames: 700, wantLeft: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &sliceReader{rate: 8000, channels: 2, data: make([]float32, 1000)}
			if err := discardFrames(src, tt.frames); err != nil {
				t.Fatalf("discardFrames() error = %v", err)
			}
			left := (len(src.data) - src.pos) / src.channels
			if left != tt.wantLeft {
				t.Errorf("frames left = %d, want %d", left, tt.wantLeft)
			}
		})
	}
}
