// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus instruments for the mixing engine.
// All fields are safe for use from the real-time callback thread.
type Metrics struct {
	// Callback metrics
	CallbacksTotal   prometheus.Counter
	CallbackDuration prometheus.Histogram
	DeadlineOverruns prometheus.Counter
	DriverUnderflows prometheus.Counter

	// Source metrics
	SourceErrors  prometheus.Counter
	ActiveSources prometheus.Gauge

	// Stream metrics
	StreamsOpen    prometheus.Gauge
	StreamsCreated prometheus.Counter
}

// New creates and registers all engine metrics against reg. Pass
// prometheus.DefaultRegisterer for the usual process-wide registry, or a
// private registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CallbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "sndmix_callbacks_total",
			Help: "Total number of driver callbacks serviced",
		}),
		CallbackDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "sndmix_callback_duration_seconds",
			Help: "Time spent producing one output block",
			// 50µs .. ~100ms; a 128-frame block at 44.1kHz is ~2.9ms
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		DeadlineOverruns: factory.NewCounter(prometheus.CounterOpts{
			Name: "sndmix_deadline_overruns_total",
			Help: "Callbacks whose processing time exceeded the warning threshold",
		}),
		DriverUnderflows: factory.NewCounter(prometheus.CounterOpts{
			Name: "sndmix_driver_underflows_total",
			Help: "Output underflow conditions reported by the audio driver",
		}),
		SourceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "sndmix_source_errors_total",
			Help: "Sound sources dropped from a stream after a block production failure",
		}),
		ActiveSources: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sndmix_active_sources",
			Help: "Sound sources currently being mixed across all streams",
		}),
		StreamsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "sndmix_streams_open",
			Help: "Hardware output streams currently open",
		}),
		StreamsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "sndmix_streams_created_total",
			Help: "Hardware output streams created since start",
		}),
	}
}
