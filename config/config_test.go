// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
audio:
  sample_rate: 48000
mixer:
  callback_warn_ms: 2.5
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("sample_rate = %d, want 48000", cfg.Audio.SampleRate)
	}
	// Untouched fields keep their defaults.
	if cfg.Audio.Channels != 2 {
		t.Errorf("channels = %d, want default 2", cfg.Audio.Channels)
	}
	if cfg.Audio.BlockSize != 128 {
		t.Errorf("block_size = %d, want default 128", cfg.Audio.BlockSize)
	}
	if want := 2500 * time.Microsecond; cfg.Mixer.CallbackWarn() != want {
		t.Errorf("CallbackWarn() = %v, want %v", cfg.Mixer.CallbackWarn(), want)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: "audio: ["},
		{name: "zero sample rate", body: "audio:\n  sample_rate: 0\n"},
		{name: "negative channels", body: "audio:\n  channels: -2\n"},
		{name: "bad level", body: "logging:\n  level: loud\n"},
		{name: "bad format", body: "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() succeeded")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() on missing file succeeded")
	}
}
