// SPDX-License-Identifier: EPL-2.0

// Command sndmix-play plays tones, notes and sound files through the default
// output device, mixing everything onto one shared stream.
//
//	sndmix-play -freq 440 -dur 1s
//	sndmix-play -note C#4 chime.wav background.mp3
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Brit1317/sndmix"
	"github.com/Brit1317/sndmix/config"
	"github.com/Brit1317/sndmix/device/portaudio"
	"github.com/Brit1317/sndmix/metrics"
	"github.com/Brit1317/sndmix/mixer"
	"github.com/Brit1317/sndmix/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sndmix-play:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to YAML configuration")
	note := flag.String("note", "", "note name to play, e.g. A4 or C#3")
	freq := flag.Float64("freq", 0, "tone frequency in Hz")
	dur := flag.Duration("dur", 2*time.Second, "tone duration")
	loops := flag.Int("loops", 0, "additional repeats, -1 forever")
	volume := flag.Float64("volume", 1, "playback gain")
	streaming := flag.Bool("streaming", false, "decode files in the audio callback instead of buffering")
	metricsAddr := flag.String("metrics", "", "address to serve Prometheus metrics on, empty disables")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}

	logger := cfg.Logging.NewLogger()
	slog.SetDefault(logger)

	drv, err := portaudio.New()
	if err != nil {
		return err
	}
	defer drv.Close()

	promReg := prometheus.NewRegistry()
	met := metrics.New(promReg)
	if *metricsAddr != "" {
		go func() {
			handler := promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})
			if err := http.ListenAndServe(*metricsAddr, handler); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	reg := mixer.NewRegistry(drv, mixer.Options{
		Logger:            logger,
		Metrics:           met,
		CallbackWarn:      cfg.Mixer.CallbackWarn(),
		MaxLoggedOverruns: cfg.Mixer.MaxLoggedOverruns,
	})
	defer reg.Close()

	opts := sndmix.Options{
		SampleRate: cfg.Audio.SampleRate,
		BlockSize:  cfg.Audio.BlockSize,
		Volume:     float32(*volume),
		Loops:      *loops,
		Streaming:  *streaming,
	}
	if cfg.Audio.Channels == 1 {
		opts.Stereo = sndmix.ForceMono
	}

	var sounds []*sndmix.Sound
	defer func() {
		for _, s := range sounds {
			s.Close()
		}
	}()

	switch {
	case *note != "":
		s, err := sndmix.NewNote(reg, *note, *dur, opts)
		if err != nil {
			return err
		}
		sounds = append(sounds, s)
	case *freq > 0:
		s, err := sndmix.NewTone(reg, *freq, *dur, opts)
		if err != nil {
			return err
		}
		sounds = append(sounds, s)
	}

	for _, path := range flag.Args() {
		s, err := sndmix.NewFile(reg, path, opts)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		sounds = append(sounds, s)
	}

	if len(sounds) == 0 {
		return errors.New("nothing to play: pass -freq, -note or sound files")
	}

	for _, s := range sounds {
		s.Play()
	}
	logger.Info("playing", "sounds", len(sounds), "stream", sounds[0].Stream().Key().String())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-sig:
			logger.Info("interrupted, stopping playback")
			for _, s := range sounds {
				s.Stop()
			}
			return nil
		case <-tick.C:
			active := 0
			for _, s := range sounds {
				switch s.Status() {
				case source.Playing, source.Paused:
					active++
				}
			}
			if active == 0 {
				return nil
			}
		}
	}
}
