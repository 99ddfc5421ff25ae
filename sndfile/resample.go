// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"fmt"
	"io"

	"github.com/Brit1317/sndmix/utils"
)

// Resampler converts src to a new sample rate with cubic interpolation over a
// four frame window. A one-pole low-pass stage tames aliasing when
// downsampling. Channel count is preserved.
type Resampler struct {
	src      Reader
	dstRate  int
	ratio    float64 // source frames advanced per output frame
	channels int

	// window[0]=t-1, window[1]=t0, window[2]=t+1, window[3]=t+2
	window   [4][]float32
	hasFrame [4]bool
	primed   bool
	pos      float64
	eof      bool

	readBuf []float32

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

// NewResampler wraps src so reads come out at dstRate.
func NewResampler(src Reader, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		readBuf:     make([]float32, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Read(dst []float32) (int, error) {
	want := len(dst) / r.channels
	if want == 0 {
		return 0, nil
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					if written == 0 {
						return 0, io.EOF
					}
					return written, io.EOF
				}
				return written, err
			}
		}

		if !r.hasFrame[1] || !r.hasFrame[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := 0; c < r.channels; c++ {
			y0 := r.window[1][c]
			if r.hasFrame[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.hasFrame[3] {
				y3 = r.window[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(
				y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.pos += r.ratio
	}
	return written, nil
}

// prime fills the interpolation window with the first four source frames,
// duplicating the last one when the material is shorter than the window.
func (r *Resampler) prime() error {
	r.primed = true
	for i := 0; i < 4; i++ {
		n, err := r.readFrame(r.window[i])
		if n > 0 {
			r.hasFrame[i] = true
			if i == 0 && r.useFilter {
				copy(r.filterState, r.window[0])
			}
		}
		if err == io.EOF {
			r.eof = true
			if i == 0 && n == 0 {
				return io.EOF
			}
			last := i
			if n == 0 {
				last = i - 1
			}
			for j := last + 1; j < 4; j++ {
				copy(r.window[j], r.window[last])
				r.hasFrame[j] = true
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// advance shifts the window one frame to the left and pulls a fresh frame
// into the trailing slot.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	n, err := r.readFrame(r.window[3])
	r.hasFrame[3] = n > 0
	if err == io.EOF {
		r.eof = true
		if n == 0 {
			return io.EOF
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("resampling: %w", err)
	}
	return nil
}

func (r *Resampler) readFrame(frame []float32) (int, error) {
	n, err := r.src.Read(r.readBuf)
	if n > 0 {
		copy(frame, r.readBuf)
		if r.useFilter {
			for c := 0; c < r.channels; c++ {
				frame[c] = r.filterAlpha*frame[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = frame[c]
			}
		}
	}
	return n, err
}
