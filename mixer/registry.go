// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Brit1317/sndmix/device"
	"github.com/Brit1317/sndmix/metrics"
)

// Options configures a Registry. The zero value is usable.
type Options struct {
	// Logger receives overrun and source-failure diagnostics. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Metrics

	// CallbackWarn overrides DefaultCallbackWarn.
	CallbackWarn time.Duration

	// MaxLoggedOverruns overrides DefaultMaxLoggedOverruns.
	MaxLoggedOverruns int
}

// Registry is the table of open hardware output streams, keyed by their
// format. It deduplicates streams and, on single-stream platforms, enforces
// that only one is ever open. A Registry is an explicit object with a scoped
// lifetime: create one at session start, Close it at session end.
type Registry struct {
	drv     device.Driver
	logger  *slog.Logger
	met     *metrics.Metrics
	warnAt  time.Duration
	maxWarn int

	mu      sync.Mutex
	streams map[Key]*Stream
	order   []Key // insertion order, scanned by GetSimilar
	closed  bool
}

// NewRegistry creates an empty registry backed by drv.
func NewRegistry(drv device.Driver, opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		drv:     drv,
		logger:  logger,
		met:     opts.Metrics,
		warnAt:  opts.CallbackWarn,
		maxWarn: opts.MaxLoggedOverruns,
		streams: make(map[Key]*Stream),
	}
}

// GetStream returns the stream with exactly the requested format, creating
// and starting one if needed. When the platform supports only a single
// concurrent stream and a different format is already open, it fails with
// ErrConcurrentStream.
func (r *Registry) GetStream(sampleRate, channels, blockSize int) (*Stream, error) {
	key := Key{SampleRate: sampleRate, Channels: channels, BlockSize: blockSize}
	if !key.concrete() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.streams[key]; ok {
		return st, nil
	}
	if r.closed {
		return nil, ErrRegistryClosed
	}
	if r.drv.SingleStream() && len(r.order) > 0 {
		return nil, fmt.Errorf("%w: requested %s but %s is already open",
			ErrConcurrentStream, key, r.order[0])
	}

	st := newStream(key, r.logger, r.met, r.warnAt, r.maxWarn)
	hw, err := r.drv.Open(sampleRate, channels, blockSize, st.callback)
	if err != nil {
		return nil, fmt.Errorf("opening output stream %s: %w", key, err)
	}
	if err := hw.Start(); err != nil {
		hw.Close()
		return nil, fmt.Errorf("starting output stream %s: %w", key, err)
	}
	st.hw = hw

	r.streams[key] = st
	r.order = append(r.order, key)
	if r.met != nil {
		r.met.StreamsOpen.Inc()
		r.met.StreamsCreated.Inc()
	}
	r.logger.Info("opened output stream", "stream", key.String())
	return st, nil
}

// GetSimilar performs a fuzzy lookup: fields set to Any match anything, all
// other fields must be equal. The first structural match in table order is
// returned; when several streams match, which one is unspecified.
//
// When nothing matches and all three fields are concrete, GetSimilar falls
// back to creating the stream via GetStream. When fields remain wildcarded
// and nothing matches, it returns (nil, nil): no match is not an error, the
// caller decides the fallback policy.
func (r *Registry) GetSimilar(sampleRate, channels, blockSize int) (*Stream, error) {
	req := Key{SampleRate: sampleRate, Channels: channels, BlockSize: blockSize}

	r.mu.Lock()
	for _, k := range r.order {
		if k.matches(req) {
			st := r.streams[k]
			r.mu.Unlock()
			return st, nil
		}
	}
	r.mu.Unlock()

	if req.concrete() {
		return r.GetStream(sampleRate, channels, blockSize)
	}
	return nil, nil
}

// Len returns the number of open streams.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Close tears down every stream deterministically and marks the registry
// closed. Subsequent stream requests fail with ErrRegistryClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	streams := make([]*Stream, 0, len(r.order))
	for _, k := range r.order {
		streams = append(streams, r.streams[k])
	}
	r.streams = make(map[Key]*Stream)
	r.order = nil
	r.mu.Unlock()

	var errs []error
	for _, st := range streams {
		if err := st.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing stream %s: %w", st.Key(), err))
		}
		if r.met != nil {
			r.met.StreamsOpen.Dec()
		}
	}
	return errors.Join(errs...)
}
