// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes Prometheus instrumentation for the mixing engine:
// callback timing, deadline overruns, driver underflows and source counts.
// The mixer accepts a *Metrics optionally; a nil value disables collection.
package metrics
