// SPDX-License-Identifier: EPL-2.0

package source

import "fmt"

// ArraySource plays interleaved PCM samples held in memory.
type ArraySource struct {
	playback
	sampleRate int
	channels   int
	data       []float32
	pos        int64
}

// NewArraySource wraps interleaved samples. The slice is not copied; the
// caller must not mutate it while the source is scheduled.
func NewArraySource(sampleRate, channels int, data []float32) (*ArraySource, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSampleRate, sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadChannels, channels)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples over %d channels", ErrRaggedSamples, len(data), channels)
	}

	s := &ArraySource{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data,
	}
	s.playback = newPlayback(func() { s.pos = 0 })
	return s, nil
}

func (s *ArraySource) SampleRate() int { return s.sampleRate }
func (s *ArraySource) Channels() int   { return s.channels }
func (s *ArraySource) Frames() int64   { return int64(len(s.data) / s.channels) }

func (s *ArraySource) Seek(frame int64) error {
	if frame < 0 || frame > s.Frames() {
		return fmt.Errorf("%w: frame %d of %d", ErrSeekRange, frame, s.Frames())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pos = frame
	return nil
}

func (s *ArraySource) NextBlock(dst []float32) (int, error) {
	return s.nextBlock(dst, s.channels, s.copyOut)
}

func (s *ArraySource) copyOut(dst []float32) int {
	frames := len(dst) / s.channels
	left := s.Frames() - s.pos
	if int64(frames) > left {
		frames = int(left)
	}

	start := s.pos * int64(s.channels)
	copy(dst, s.data[start:start+int64(frames*s.channels)])
	s.pos += int64(frames)
	return frames
}
