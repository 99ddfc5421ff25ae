// SPDX-License-Identifier: EPL-2.0

package source

import (
	"sync"

	"github.com/Brit1317/sndmix/mixer"
)

// Source is a playable sound: a mixer source plus transport control.
// Implementations are safe for a control goroutine and the audio callback to
// use concurrently.
type Source interface {
	mixer.Source

	// Play starts or resumes playback. Playing a stopped or finished sound
	// restarts it from the beginning.
	Play()
	// Pause holds the cursor; the sound emits silence until resumed.
	Pause()
	// Stop cancels playback and resets the cursor to the start.
	Stop()
	Status() Status

	// SetVolume scales output samples. 1 is unity gain, 0 silences.
	SetVolume(v float32)
	Volume() float32

	// SetLoops requests n additional repeats after the first playthrough.
	// -1 repeats forever.
	SetLoops(n int)
	Loops() int

	// Frames reports the length of one playthrough, or -1 when unknown.
	Frames() int64
	// Seek positions the cursor at the given frame of the current
	// playthrough.
	Seek(frame int64) error
}

// playback carries the transport state machine shared by every source
// variant. The embedding type supplies rewind to reset its cursor; rewind
// runs with mu held.
type playback struct {
	mu        sync.Mutex
	status    Status
	volume    float32
	loops     int
	loopsDone int
	rewind    func()
}

func newPlayback(rewind func()) playback {
	return playback{volume: 1, rewind: rewind}
}

func (p *playback) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == Stopped || p.status == Finished {
		p.loopsDone = 0
		p.rewind()
	}
	p.status = Playing
}

func (p *playback) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == Playing {
		p.status = Paused
	}
}

func (p *playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loopsDone = 0
	p.rewind()
	p.status = Stopped
}

func (p *playback) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.status
}

func (p *playback) SetVolume(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = v
}

func (p *playback) Volume() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

func (p *playback) SetLoops(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loops = n
}

func (p *playback) Loops() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loops
}

// EndOfStream reports whether the source wants to stay scheduled after a
// short block. Loops are folded in during block generation, so a short block
// here always means the material is spent.
func (p *playback) EndOfStream() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status == Playing {
		p.status = Finished
	}
	return false
}

// nextBlock drives the transport state machine around a concrete generator.
// gen fills dst with whole frames, returns the count written, and comes up
// short only when the current playthrough runs out; nextBlock then rewinds
// across loop boundaries so repeats are seamless.
func (p *playback) nextBlock(dst []float32, channels int, gen func([]float32) int) (int, error) {
	frames := len(dst) / channels

	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.status {
	case Playing:
	case Paused:
		clear(dst[:frames*channels])
		return frames, nil
	default:
		return 0, nil
	}

	written := 0
	stalled := false
	for written < frames {
		n := gen(dst[written*channels : frames*channels])
		written += n
		if written == frames {
			break
		}
		if n == 0 && stalled {
			break
		}
		stalled = n == 0
		if !p.advanceLoop() {
			break
		}
	}

	if p.volume != 1 {
		for i := 0; i < written*channels; i++ {
			dst[i] *= p.volume
		}
	}
	return written, nil
}

// advanceLoop records a completed playthrough and rewinds when more repeats
// are due. Runs with mu held.
func (p *playback) advanceLoop() bool {
	p.loopsDone++
	if p.loops >= 0 && p.loopsDone > p.loops {
		return false
	}
	p.rewind()
	return true
}
