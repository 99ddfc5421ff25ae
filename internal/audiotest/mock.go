// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"sync"
)

// MockSource is a test helper implementing the mixer.Source contract. It
// produces a fixed number of frames from a waveform function and counts
// end-of-stream notifications.
type MockSource struct {
	mu          sync.Mutex
	sampleRate  int
	channels    int
	totalFrames int
	pos         int
	loops       int // rewinds remaining; -1 loops forever
	waveform    func(frame, channel int) float32

	eosCount int
	Fail     error // returned by NextBlock when set
	Panic    bool  // NextBlock panics when set
}

// NewMockSource creates a mock source producing totalFrames frames.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source producing silence.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return 0
	})
}

// NewConstantSource creates a mock source producing a constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return value
	})
}

// NewSineSource creates a mock source producing a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// SetLoops sets how many additional passes the source performs before
// reporting itself finished. -1 loops forever.
func (m *MockSource) SetLoops(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loops = n
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

// EOSCount returns how many end-of-stream notifications the source has seen.
func (m *MockSource) EOSCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eosCount
}

// Reset rewinds the source so it can be replayed.
func (m *MockSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = 0
	m.eosCount = 0
}

func (m *MockSource) NextBlock(dst []float32) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Panic {
		panic("mock source asked to panic")
	}
	if m.Fail != nil {
		return 0, m.Fail
	}

	frames := len(dst) / m.channels
	if avail := m.totalFrames - m.pos; frames > avail {
		frames = avail
	}
	for f := 0; f < frames; f++ {
		for c := 0; c < m.channels; c++ {
			dst[f*m.channels+c] = m.waveform(m.pos+f, c)
		}
	}
	m.pos += frames
	return frames, nil
}

func (m *MockSource) EndOfStream() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eosCount++
	if m.loops == 0 {
		return false
	}
	if m.loops > 0 {
		m.loops--
	}
	m.pos = 0
	return true
}
