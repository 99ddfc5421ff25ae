// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the playback service configuration, loaded from YAML.
type Config struct {
	Audio   AudioConfig   `yaml:"audio"`
	Mixer   MixerConfig   `yaml:"mixer"`
	Logging LoggingConfig `yaml:"logging"`
}

// AudioConfig selects the default output stream format.
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
	BlockSize  int `yaml:"block_size"`
}

// MixerConfig tunes callback diagnostics.
type MixerConfig struct {
	// CallbackWarnMs is the processing-time threshold, in milliseconds,
	// past which a callback is logged as a deadline overrun.
	CallbackWarnMs float64 `yaml:"callback_warn_ms"`
	// MaxLoggedOverruns bounds consecutive overrun logs before suppression.
	MaxLoggedOverruns int `yaml:"max_logged_overruns"`
}

// LoggingConfig selects log verbosity and output encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: 44100,
			Channels:   2,
			BlockSize:  128,
		},
		Mixer: MixerConfig{
			CallbackWarnMs:    1,
			MaxLoggedOverruns: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels <= 0 {
		return fmt.Errorf("audio.channels must be positive, got %d", c.Audio.Channels)
	}
	if c.Audio.BlockSize <= 0 {
		return fmt.Errorf("audio.block_size must be positive, got %d", c.Audio.BlockSize)
	}
	if c.Mixer.CallbackWarnMs < 0 {
		return fmt.Errorf("mixer.callback_warn_ms must not be negative, got %g", c.Mixer.CallbackWarnMs)
	}
	if _, err := c.Logging.slogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// CallbackWarn converts the millisecond threshold to a duration.
func (m MixerConfig) CallbackWarn() time.Duration {
	return time.Duration(m.CallbackWarnMs * float64(time.Millisecond))
}

func (l LoggingConfig) slogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", l.Level)
	}
}

// NewLogger builds a slog logger writing to stderr per the logging section.
func (l LoggingConfig) NewLogger() *slog.Logger {
	level, err := l.slogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
