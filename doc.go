// SPDX-License-Identifier: EPL-2.0

// Package sndmix plays tones, sample arrays and sound files through shared
// low-latency output streams.
//
// A mixer.Registry owns the hardware streams, one per sample rate, channel
// and block size combination. Sounds created by NewTone, NewNote, NewFile
// and NewArray resolve a stream from the registry, convert their material to
// its format, and are mixed into the output by the stream's real-time
// callback. On platforms where the audio backend allows only one concurrent
// stream, sounds silently coerce to the format of the stream that is already
// open.
//
//	drv, err := portaudio.New()
//	reg := mixer.NewRegistry(drv, mixer.Options{})
//	defer reg.Close()
//
//	beep, err := sndmix.NewTone(reg, 440, time.Second, sndmix.Options{})
//	beep.Play()
package sndmix
