// SPDX-License-Identifier: EPL-2.0

package mixer

// Source is a playable unit the mixer can pull blocks from. Implementations
// live in the source package; tests provide mocks.
//
// A Source belongs to at most one Stream's active set at a time. The stream
// holds an exclusive reference but does not own the source: the client keeps
// it and may stop or replay it after removal.
type Source interface {
	// SampleRate of the produced material in Hz.
	SampleRate() int

	// Channels count of the produced material. Mono sources are broadcast
	// across all output channels by the mixer.
	Channels() int

	// NextBlock fills dst with up to len(dst)/Channels() frames of
	// interleaved samples at the current cursor and returns the number of
	// frames produced. Producing fewer frames than requested signals end of
	// material; this happens exactly once per playthrough. A non-nil error
	// means block production failed and the source will be dropped.
	//
	// NextBlock runs on the driver's real-time thread and must not block.
	NextBlock(dst []float32) (int, error)

	// EndOfStream is invoked by the stream after a short block. The source
	// updates its loop bookkeeping and reports whether it rewound for
	// another pass (true: stay in the active set) or finished (false:
	// remove).
	EndOfStream() bool
}
