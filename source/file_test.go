// SPDX-License-Identifier: EPL-2.0

package source

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// writeWavFixture encodes a 16-bit stereo sine of the given length.
func writeWavFixture(t *testing.T, frames, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}

	data := make([]int, frames*2)
	for fr := 0; fr < frames; fr++ {
		v := int(math.Sin(2*math.Pi*440*float64(fr)/float64(sampleRate)) * 16000)
		data[fr*2] = v
		data[fr*2+1] = v
	}
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	enc := gowav.NewEncoder(f, sampleRate, 16, 2, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}
	return path
}

func TestFileSource_Buffered(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 1600, 8000)

	s, err := NewFileSource(path, FileOptions{})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer s.Close()

	if got := s.SampleRate(); got != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", got)
	}
	if got := s.Channels(); got != 2 {
		t.Errorf("Channels() = %d, want 2", got)
	}
	if got := s.Frames(); got != 1600 {
		t.Errorf("Frames() = %d, want 1600", got)
	}

	s.Play()
	if got := drainFrames(t, s, 256); got != 1600 {
		t.Errorf("produced %d frames, want 1600", got)
	}
	if s.Status() != Finished {
		t.Errorf("Status() = %v, want Finished", s.Status())
	}
}

func TestFileSource_Trim(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 1600, 8000)

	s, err := NewFileSource(path, FileOptions{
		Start: 100 * time.Millisecond,
		Stop:  150 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer s.Close()

	// 50ms at 8000 Hz.
	if got := s.Frames(); got != 400 {
		t.Errorf("Frames() = %d, want 400", got)
	}

	s.Play()
	if got := drainFrames(t, s, 128); got != 400 {
		t.Errorf("produced %d frames, want 400", got)
	}
}

func TestFileSource_TrimRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 1600, 8000)

	_, err := NewFileSource(path, FileOptions{
		Start: 150 * time.Millisecond,
		Stop:  100 * time.Millisecond,
	})
	if !errors.Is(err, ErrSeekRange) {
		t.Errorf("NewFileSource() error = %v, want ErrSeekRange", err)
	}
}

func TestFileSource_MonoFold(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 800, 8000)

	s, err := NewFileSource(path, FileOptions{Mono: true})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer s.Close()

	if got := s.Channels(); got != 1 {
		t.Errorf("Channels() = %d, want 1", got)
	}

	s.Play()
	if got := drainFrames(t, s, 128); got != 800 {
		t.Errorf("produced %d frames, want 800", got)
	}
}

func TestFileSource_Resample(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 800, 8000)

	s, err := NewFileSource(path, FileOptions{SampleRate: 16000})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer s.Close()

	if got := s.SampleRate(); got != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", got)
	}

	s.Play()
	got := drainFrames(t, s, 256)
	if got < 1590 || got > 1610 {
		t.Errorf("produced %d frames, want ~1600", got)
	}
}

func TestFileSource_StreamingLoops(t *testing.T) {
	t.Parallel()

	path := writeWavFixture(t, 500, 8000)

	s, err := NewFileSource(path, FileOptions{Streaming: true})
	if err != nil {
		t.Fatalf("NewFileSource() error = %v", err)
	}
	defer s.Close()

	if got := s.Frames(); got != 500 {
		t.Errorf("Frames() = %d, want 500", got)
	}

	s.SetLoops(1)
	s.Play()
	if got := drainFrames(t, s, 128); got != 1000 {
		t.Errorf("produced %d frames with one repeat, want 1000", got)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.wav"), FileOptions{})
	if err == nil {
		t.Error("NewFileSource() on missing file succeeded")
	}
}
