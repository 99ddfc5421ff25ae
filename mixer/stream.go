// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Brit1317/sndmix/device"
	"github.com/Brit1317/sndmix/metrics"
)

// Defaults for callback timing diagnostics.
const (
	// DefaultCallbackWarn is the processing-time threshold past which a
	// callback is logged as a deadline overrun.
	DefaultCallbackWarn = time.Millisecond

	// DefaultMaxLoggedOverruns bounds how many consecutive overruns are
	// logged before suppression kicks in. A clean callback resets the count.
	DefaultMaxLoggedOverruns = 5
)

// Stream owns one hardware output stream and mixes its active sources into
// the driver's output buffer once per hardware tick. Streams are created by
// a Registry, never directly.
type Stream struct {
	key     Key
	hw      device.Stream
	logger  *slog.Logger
	met     *metrics.Metrics
	warnAt  time.Duration
	maxWarn int

	mu      sync.Mutex
	sources []Source
	scratch []float32
	closed  bool

	// touched only by the callback goroutine
	overruns int
}

func newStream(key Key, logger *slog.Logger, met *metrics.Metrics, warnAt time.Duration, maxWarn int) *Stream {
	if warnAt <= 0 {
		warnAt = DefaultCallbackWarn
	}
	if maxWarn <= 0 {
		maxWarn = DefaultMaxLoggedOverruns
	}
	return &Stream{
		key:     key,
		logger:  logger,
		met:     met,
		warnAt:  warnAt,
		maxWarn: maxWarn,
		scratch: make([]float32, key.BlockSize*key.Channels),
	}
}

// Key returns the stream's immutable format triple.
func (s *Stream) Key() Key { return s.key }

// SampleRate of the hardware stream in Hz.
func (s *Stream) SampleRate() int { return s.key.SampleRate }

// Channels count of the hardware stream.
func (s *Stream) Channels() int { return s.key.Channels }

// BlockSize in frames of the hardware stream.
func (s *Stream) BlockSize() int { return s.key.BlockSize }

// Add appends src to the active set. Adding a source that is already active
// is a no-op, so a double Play cannot double-mix. Safe to call concurrently
// with the mixing callback; never blocks on it beyond a short lock.
func (s *Stream) Add(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cur := range s.sources {
		if cur == src {
			return
		}
	}
	s.sources = append(s.sources, src)
	if s.met != nil {
		s.met.ActiveSources.Inc()
	}
}

// Remove drops src from the active set by identity. A source that is not
// active is ignored. Takes effect no later than the next callback.
func (s *Stream) Remove(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.sources {
		if cur == src {
			s.sources = append(s.sources[:i], s.sources[i+1:]...)
			if s.met != nil {
				s.met.ActiveSources.Dec()
			}
			return
		}
	}
}

// Active returns the number of sources currently being mixed.
func (s *Stream) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sources)
}

// Close stops the hardware stream and releases it. Remaining sources are
// discarded from the active set; the sources themselves stay usable.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.met != nil {
		s.met.ActiveSources.Sub(float64(len(s.sources)))
	}
	s.sources = nil
	hw := s.hw
	s.mu.Unlock()

	if hw == nil {
		return nil
	}
	if err := hw.Stop(); err != nil {
		hw.Close()
		return err
	}
	return hw.Close()
}

// callback services one hardware tick. It zeroes the output buffer, pulls a
// block from every active source, sums them, and retires sources that
// reported end of material. It runs on the driver's real-time thread.
func (s *Stream) callback(out []float32, frames int, _ device.TimeInfo, flags device.Flags) {
	start := time.Now()

	clear(out)
	if flags&device.OutputUnderflow != 0 && s.met != nil {
		s.met.DriverUnderflows.Inc()
	}

	s.mu.Lock()
	if need := frames * s.key.Channels; cap(s.scratch) < need {
		// drivers may request more frames than the negotiated block size
		s.scratch = make([]float32, need)
	}
	removed := 0
	for i := 0; i < len(s.sources); {
		if s.mixOne(s.sources[i], out, frames) {
			i++
			continue
		}
		s.sources = append(s.sources[:i], s.sources[i+1:]...)
		removed++
	}
	s.mu.Unlock()

	elapsed := time.Since(start)
	s.observe(elapsed, frames, removed)
}

// mixOne pulls one block from src and accumulates it into out. It reports
// whether the source stays in the active set. A panic or error inside the
// source is contained here so one misbehaving source cannot silence the
// stream.
func (s *Stream) mixOne(src Source, out []float32, frames int) (keep bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sound source panicked during block production, dropping it",
				"stream", s.key.String(), "panic", r)
			if s.met != nil {
				s.met.SourceErrors.Inc()
			}
			keep = false
		}
	}()

	srcCh := src.Channels()
	if need := frames * srcCh; cap(s.scratch) < need {
		// sources may carry more channels than the stream
		s.scratch = make([]float32, need)
	}
	buf := s.scratch[:frames*srcCh]

	n, err := src.NextBlock(buf)
	if n > 0 {
		accumulate(out, buf[:n*srcCh], srcCh, s.key.Channels)
	}
	if err != nil {
		s.logger.Error("sound source failed to produce a block, dropping it",
			"stream", s.key.String(), "error", err)
		if s.met != nil {
			s.met.SourceErrors.Inc()
		}
		return false
	}
	if n < frames {
		// end of material: the source decides whether it loops
		return src.EndOfStream()
	}
	return true
}

// accumulate sums src into dst. Mono material is broadcast across every
// output channel; otherwise channels are summed pairwise up to the smaller
// layout.
func accumulate(dst, src []float32, srcCh, dstCh int) {
	switch {
	case srcCh == dstCh:
		for i, v := range src {
			dst[i] += v
		}
	case srcCh == 1:
		for f, v := range src {
			base := f * dstCh
			for c := 0; c < dstCh; c++ {
				dst[base+c] += v
			}
		}
	default:
		ch := min(srcCh, dstCh)
		frames := len(src) / srcCh
		for f := 0; f < frames; f++ {
			for c := 0; c < ch; c++ {
				dst[f*dstCh+c] += src[f*srcCh+c]
			}
		}
	}
}

// observe records callback timing and logs deadline overruns. Overruns are
// reported, not retried: a late block has already glitched. After maxWarn
// consecutive overruns further logs are suppressed until timing recovers.
func (s *Stream) observe(elapsed time.Duration, frames, removed int) {
	if s.met != nil {
		s.met.CallbacksTotal.Inc()
		s.met.CallbackDuration.Observe(elapsed.Seconds())
		if removed > 0 {
			s.met.ActiveSources.Sub(float64(removed))
		}
	}

	if elapsed <= s.warnAt {
		if s.overruns > s.maxWarn {
			s.logger.Info("callback timing recovered",
				"stream", s.key.String(), "overruns", s.overruns)
		}
		s.overruns = 0
		return
	}

	s.overruns++
	if s.met != nil {
		s.met.DeadlineOverruns.Inc()
	}
	if s.overruns > s.maxWarn {
		return
	}
	deadline := time.Duration(frames) * time.Second / time.Duration(s.key.SampleRate)
	s.logger.Warn("callback exceeded timing threshold",
		"stream", s.key.String(),
		"elapsed", elapsed,
		"deadline", deadline,
		"frames", frames,
		"consecutive", s.overruns)
	if s.overruns == s.maxWarn {
		s.logger.Warn("suppressing further overrun logs until timing recovers",
			"stream", s.key.String())
	}
}
