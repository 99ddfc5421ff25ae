// SPDX-License-Identifier: EPL-2.0

// Package mixer implements the real-time audio mixing engine: a registry of
// hardware output streams and the per-stream callback that sums concurrently
// playing sound sources into the driver's output buffer.
//
// # Streams and the registry
//
// A Stream owns exactly one hardware output stream with an immutable
// (sampleRate, channels, blockSize) format. Streams are created through a
// Registry, which deduplicates by format:
//
//	reg := mixer.NewRegistry(drv, mixer.Options{Logger: logger})
//	st, err := reg.GetStream(44100, 2, 128)
//
// Requesting the same format twice returns the same Stream. On platforms
// that support only one concurrent hardware stream, requesting a second
// format fails with ErrConcurrentStream; callers typically recover with a
// fuzzy lookup:
//
//	st, err := reg.GetSimilar(44100, mixer.Any, mixer.Any)
//
// The registry never prunes streams on its own. Close tears everything down
// deterministically.
//
// # The mixing callback
//
// The audio driver invokes the stream's callback on its own real-time thread
// once per hardware block. The callback zeroes the output buffer, pulls one
// block from every active Source, sums them (broadcasting mono material
// across all output channels) and retires sources that produced a short
// block. Mixing order is stable within one invocation but the sum is
// order-independent; only the removal scan depends on it.
//
// The callback has a hard deadline of blockSize/sampleRate seconds. Nothing
// inside it may block: the active set is guarded by a mutex held only for
// the duration of the mix itself, and client-side Add/Remove hold it just as
// briefly. Processing time is measured every tick; past a soft threshold the
// overrun is logged with timing diagnostics, and after a few consecutive
// overruns logging is suppressed until timing recovers. Overruns are never
// fatal — a glitched block cannot be un-glitched.
//
// A panic or error inside one source's block production is contained: the
// offending source is logged and dropped, the remaining sources keep
// playing.
package mixer
