// SPDX-License-Identifier: EPL-2.0

package source

import (
	"errors"
	"testing"
)

func TestNewArraySource_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    int
		wantErr    error
	}{
		{name: "valid stereo", sampleRate: 44100, channels: 2, samples: 10},
		{name: "ragged", sampleRate: 44100, channels: 2, samples: 11, wantErr: ErrRaggedSamples},
		{name: "zero rate", sampleRate: 0, channels: 1, samples: 4, wantErr: ErrBadSampleRate},
		{name: "zero channels", sampleRate: 44100, channels: 0, samples: 4, wantErr: ErrBadChannels},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewArraySource(tt.sampleRate, tt.channels, make([]float32, tt.samples))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewArraySource() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestArraySource_PlaysDataVerbatim(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	s, err := NewArraySource(8000, 2, data)
	if err != nil {
		t.Fatalf("NewArraySource() error = %v", err)
	}
	if s.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", s.Frames())
	}

	s.Play()
	buf := make([]float32, len(data))
	n, err := s.NextBlock(buf)
	if err != nil {
		t.Fatalf("NextBlock() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("NextBlock() = %d frames, want 3", n)
	}
	for i := range data {
		if buf[i] != data[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], data[i])
		}
	}
}

func TestArraySource_Seek(t *testing.T) {
	t.Parallel()

	s, err := NewArraySource(8000, 1, rampData(100))
	if err != nil {
		t.Fatalf("NewArraySource() error = %v", err)
	}

	if err := s.Seek(60); err != nil {
		t.Fatalf("Seek(60) error = %v", err)
	}
	s.Play()
	if got := drainFrames(t, s, 32); got != 40 {
		t.Errorf("produced %d frames after seek, want 40", got)
	}

	if err := s.Seek(101); !errors.Is(err, ErrSeekRange) {
		t.Errorf("Seek(101) error = %v, want ErrSeekRange", err)
	}
}
