// SPDX-License-Identifier: EPL-2.0

// Package sndfile decodes sound files into interleaved float32 PCM.
//
// Open dispatches on the file extension to one of the registered decoders
// (wav, aiff, mp3, ogg vorbis) and returns a Stream with frame-accurate
// length, read and seek. The Reader interface is the minimal pull contract;
// Resampler and MonoMixer wrap any Reader to adjust sample rate and channel
// layout before the samples reach playback.
package sndfile
