// SPDX-License-Identifier: EPL-2.0

// Package config loads the playback service configuration from YAML over
// sensible defaults.
package config
