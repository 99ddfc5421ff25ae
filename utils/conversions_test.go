// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"silence", 0.0, 0},
		{"positive full scale", 1.0, 32767},
		{"negative full scale", -1.0, -32767},
		{"half scale", 0.5, 16383},
		{"clamped above", 2.5, 32767},
		{"clamped below", -3.0, -32767},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.in); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestInt16ToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int16
		want float32
	}{
		{"silence", 0, 0.0},
		{"max positive", 32767, 32767.0 / 32768.0},
		{"max negative", -32768, -1.0},
		{"mid scale", 16384, 0.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Int16ToFloat32(tt.in); got != tt.want {
				t.Errorf("Int16ToFloat32(%d) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConversionRoundTrip(t *testing.T) {
	t.Parallel()

	// Round-tripping through int16 must stay within one quantization step.
	const step = 1.0 / 32768.0

	for i := 0; i < 100; i++ {
		in := float32(i-50) / 50.0
		out := Int16ToFloat32(Float32ToInt16(in))

		diff := in - out
		if diff < 0 {
			diff = -diff
		}
		if diff > 2*step {
			t.Errorf("round trip of %v drifted to %v", in, out)
		}
	}
}
