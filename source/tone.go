// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"math"
	"time"
)

// Audible frequency bounds enforced on tone construction, in Hz.
const (
	MinFrequency = 37
	MaxFrequency = 20000
)

// apodizeRamp is the length of the raised-cosine fade applied to each end of
// a playthrough to avoid clicks.
const apodizeRamp = 5 * time.Millisecond

// DefaultToneDuration is used when a tone is created with a negative
// duration; such tones also loop forever.
const DefaultToneDuration = 10 * time.Second

// ToneGenerator synthesizes a pure sine tone of fixed length. The same
// samples come out on every channel.
type ToneGenerator struct {
	playback
	sampleRate int
	channels   int
	freq       float64
	step       float64 // phase increment per frame
	total      int64
	ramp       int64
	pos        int64
}

// NewToneGenerator builds a tone of the given frequency and duration.
// A negative duration means DefaultToneDuration repeated forever. apodize
// fades each playthrough in and out over a short window.
func NewToneGenerator(sampleRate, channels int, freq float64, d time.Duration, apodize bool) (*ToneGenerator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSampleRate, sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadChannels, channels)
	}
	if freq < MinFrequency || freq > MaxFrequency {
		return nil, fmt.Errorf("%w: %g Hz not in [%d, %d]", ErrFrequencyRange, freq, MinFrequency, MaxFrequency)
	}

	forever := d < 0
	if forever {
		d = DefaultToneDuration
	}

	g := &ToneGenerator{
		sampleRate: sampleRate,
		channels:   channels,
		freq:       freq,
		step:       2 * math.Pi * freq / float64(sampleRate),
		total:      int64(d.Seconds() * float64(sampleRate)),
	}
	g.playback = newPlayback(func() { g.pos = 0 })
	if forever {
		g.loops = -1
	}
	if apodize {
		g.ramp = int64(apodizeRamp.Seconds() * float64(sampleRate))
		if g.ramp*2 > g.total {
			g.ramp = g.total / 2
		}
	}
	return g, nil
}

func (g *ToneGenerator) SampleRate() int { return g.sampleRate }
func (g *ToneGenerator) Channels() int   { return g.channels }
func (g *ToneGenerator) Frames() int64   { return g.total }

// Frequency reports the tone's pitch in Hz.
func (g *ToneGenerator) Frequency() float64 { return g.freq }

func (g *ToneGenerator) Seek(frame int64) error {
	if frame < 0 || frame > g.total {
		return fmt.Errorf("%w: frame %d of %d", ErrSeekRange, frame, g.total)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pos = frame
	return nil
}

func (g *ToneGenerator) NextBlock(dst []float32) (int, error) {
	return g.nextBlock(dst, g.channels, g.generate)
}

func (g *ToneGenerator) generate(dst []float32) int {
	frames := len(dst) / g.channels
	left := g.total - g.pos
	if int64(frames) > left {
		frames = int(left)
	}

	for f := 0; f < frames; f++ {
		// phase derived from the cursor, never accumulated, so long tones
		// and seeks cannot drift
		phase := math.Mod(g.step*float64(g.pos), 2*math.Pi)
		v := float32(math.Sin(phase)) * g.envelope(g.pos)
		g.pos++
		for c := 0; c < g.channels; c++ {
			dst[f*g.channels+c] = v
		}
	}
	return frames
}

// envelope returns the apodization gain at the given frame: a raised-cosine
// fade at each end of the playthrough, unity in between.
func (g *ToneGenerator) envelope(pos int64) float32 {
	if g.ramp == 0 {
		return 1
	}
	if pos < g.ramp {
		return float32(0.5 - 0.5*math.Cos(math.Pi*float64(pos)/float64(g.ramp)))
	}
	if tail := g.total - pos; tail <= g.ramp {
		return float32(0.5 - 0.5*math.Cos(math.Pi*float64(tail)/float64(g.ramp)))
	}
	return 1
}
