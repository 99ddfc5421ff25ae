// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"

	"github.com/Brit1317/sndmix/device"
)

// FakeDriver implements device.Driver without touching hardware. Tests drive
// the callbacks synchronously through FakeStream.Tick.
type FakeDriver struct {
	mu      sync.Mutex
	single  bool
	streams []*FakeStream
	closed  bool

	// OpenErr, when set, is returned by Open.
	OpenErr error
}

// NewFakeDriver creates a fake driver. single mimics platforms that allow
// only one concurrent hardware stream.
func NewFakeDriver(single bool) *FakeDriver {
	return &FakeDriver{single: single}
}

func (d *FakeDriver) Open(sampleRate, channels, blockSize int, cb device.Callback) (device.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	st := &FakeStream{
		sampleRate: sampleRate,
		channels:   channels,
		blockSize:  blockSize,
		cb:         cb,
	}
	d.streams = append(d.streams, st)
	return st, nil
}

func (d *FakeDriver) SingleStream() bool { return d.single }

func (d *FakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Streams returns every stream opened so far, in order.
func (d *FakeDriver) Streams() []*FakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*FakeStream(nil), d.streams...)
}

// FakeStream records lifecycle calls and lets tests invoke the mixing
// callback directly.
type FakeStream struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	blockSize  int
	cb         device.Callback
	started    bool
	closed     bool
}

func (s *FakeStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("start on closed stream")
	}
	s.started = true
	return nil
}

func (s *FakeStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Started reports whether the stream is currently running.
func (s *FakeStream) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Closed reports whether Close was called.
func (s *FakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Tick invokes the callback for one block of the given frame count and
// returns the produced output buffer.
func (s *FakeStream) Tick(frames int) []float32 {
	out := make([]float32, frames*s.channels)
	s.cb(out, frames, device.TimeInfo{}, 0)
	return out
}

// TickInto invokes the callback with a caller-provided buffer, which may
// hold stale contents.
func (s *FakeStream) TickInto(out []float32, frames int) {
	s.cb(out, frames, device.TimeInfo{}, 0)
}

// TickFlags is Tick with driver status flags.
func (s *FakeStream) TickFlags(frames int, flags device.Flags) []float32 {
	out := make([]float32, frames*s.channels)
	s.cb(out, frames, device.TimeInfo{}, flags)
	return out
}
