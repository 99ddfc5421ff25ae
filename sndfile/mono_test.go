// SPDX-License-Identifier: EPL-2.0

package sndfile

import "testing"

func TestMonoMixer_AveragesChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frame    []float32
		want     float32
	}{
		{name: "stereo", channels: 2, frame: []float32{0.5, 0.1}, want: 0.3},
		{name: "quad", channels: 4, frame: []float32{0.4, 0.4, 0.0, 0.0}, want: 0.2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const frames = 10
			data := make([]float32, 0, frames*tt.channels)
			for i := 0; i < frames; i++ {
				data = append(data, tt.frame...)
			}

			m := NewMonoMixer(&sliceReader{rate: 8000, channels: tt.channels, data: data})
			if got := m.Channels(); got != 1 {
				t.Fatalf("Channels() = %d, want 1", got)
			}

			out, err := ReadAll(m)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(out) != frames {
				t.Fatalf("output frames = %d, want %d", len(out), frames)
			}
			for i, v := range out {
				if diff := v - tt.want; diff > 1e-6 || diff < -1e-6 {
					t.Fatalf("frame %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, 0.2, 0.3, 0.4}
	m := NewMonoMixer(&sliceReader{rate: 8000, channels: 1, data: data})

	out, err := ReadAll(m)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(out) != len(data) {
		t.Fatalf("output frames = %d, want %d", len(out), len(data))
	}
	for i := range out {
		if out[i] != data[i] {
			t.Errorf("frame %d = %v, want %v", i, out[i], data[i])
		}
	}
}
