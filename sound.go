// SPDX-License-Identifier: EPL-2.0

package sndmix

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Brit1317/sndmix/mixer"
	"github.com/Brit1317/sndmix/sndfile"
	"github.com/Brit1317/sndmix/source"
)

// Output format defaults used when Options leaves fields zero.
const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 128
)

// StereoMode selects the output channel layout of a sound.
type StereoMode int

const (
	// StereoAuto plays on a stereo stream; mono material is broadcast.
	StereoAuto StereoMode = iota
	// ForceMono folds everything down to one channel.
	ForceMono
	// ForceStereo behaves like StereoAuto but is explicit about it.
	ForceStereo
)

// Options tunes how a sound is prepared and which output stream it plays on.
// The zero value requests a 44.1 kHz stereo stream with 128-frame blocks.
type Options struct {
	// SampleRate of the requested output stream. 0 means DefaultSampleRate.
	SampleRate int
	// BlockSize of the requested output stream in frames. 0 means
	// DefaultBlockSize.
	BlockSize int
	// Stereo selects the channel layout.
	Stereo StereoMode

	// Volume is the playback gain. The zero value means unity; pass a small
	// positive value to play quietly.
	Volume float32
	// Loops requests additional repeats after the first playthrough, -1
	// repeats forever. 0 keeps the sound's own looping behavior.
	Loops int

	// Start and Stop trim file material to a window. Zero Stop plays to the
	// end. Ignored for tones and arrays.
	Start time.Duration
	Stop  time.Duration
	// Streaming decodes file material inside the audio callback instead of
	// buffering it up front. Ignored for tones and arrays.
	Streaming bool

	// NoApodize disables the short fade applied to tone edges.
	NoApodize bool
}

func (o Options) format() (rate, channels, block int) {
	rate = o.SampleRate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	block = o.BlockSize
	if block == 0 {
		block = DefaultBlockSize
	}
	channels = 2
	if o.Stereo == ForceMono {
		channels = 1
	}
	return rate, channels, block
}

// Sound binds a playable source to the output stream it was resolved
// against. All methods are safe for concurrent use.
type Sound struct {
	src    source.Source
	stream *mixer.Stream
	closer io.Closer
}

// NewTone creates a sine tone of the given frequency and duration. A
// negative duration plays a ten second tone on repeat until stopped.
func NewTone(reg *mixer.Registry, freq float64, d time.Duration, opts Options) (*Sound, error) {
	st, err := resolveStream(reg, opts)
	if err != nil {
		return nil, err
	}

	g, err := source.NewToneGenerator(st.SampleRate(), st.Channels(), freq, d, !opts.NoApodize)
	if err != nil {
		return nil, err
	}

	s := &Sound{src: g, stream: st}
	s.applyOptions(opts)
	return s, nil
}

// NewNote creates a tone from a note name such as "A", "C#4" or "Bb3".
func NewNote(reg *mixer.Registry, note string, d time.Duration, opts Options) (*Sound, error) {
	freq, err := NoteFrequency(note)
	if err != nil {
		return nil, err
	}
	return NewTone(reg, freq, d, opts)
}

// NewFile creates a sound from a file on disk. The material is converted to
// the resolved stream's format at load time.
func NewFile(reg *mixer.Registry, path string, opts Options) (*Sound, error) {
	st, err := resolveStream(reg, opts)
	if err != nil {
		return nil, err
	}

	fs, err := source.NewFileSource(path, source.FileOptions{
		SampleRate: st.SampleRate(),
		Mono:       st.Channels() == 1,
		Start:      opts.Start,
		Stop:       opts.Stop,
		Streaming:  opts.Streaming,
	})
	if err != nil {
		return nil, err
	}

	s := &Sound{src: fs, stream: st, closer: fs}
	s.applyOptions(opts)
	return s, nil
}

// NewArray creates a sound from interleaved samples in memory. Material
// whose rate or layout differs from the resolved stream is converted up
// front; mono material on a stereo stream is left mono and broadcast by the
// mixer.
func NewArray(reg *mixer.Registry, sampleRate, channels int, samples []float32, opts Options) (*Sound, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = sampleRate
	}
	st, err := resolveStream(reg, opts)
	if err != nil {
		return nil, err
	}

	data := samples
	outCh := channels
	var r sndfile.Reader = &memReader{rate: sampleRate, channels: channels, data: samples}
	converted := false
	if st.Channels() == 1 && channels > 1 {
		r = sndfile.NewMonoMixer(r)
		outCh = 1
		converted = true
	}
	if st.SampleRate() != sampleRate {
		r = sndfile.NewResampler(r, st.SampleRate())
		converted = true
	}
	if converted {
		data, err = sndfile.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("converting sample array: %w", err)
		}
	}

	src, err := source.NewArraySource(st.SampleRate(), outCh, data)
	if err != nil {
		return nil, err
	}

	s := &Sound{src: src, stream: st}
	s.applyOptions(opts)
	return s, nil
}

// resolveStream asks for the exact requested format and, when the platform
// only allows a single stream, silently falls back to an open stream at the
// same sample rate with layout and block size wildcarded. The sound's
// material is then coerced to that stream's format. A rate mismatch is not
// coerced; the original error surfaces.
func resolveStream(reg *mixer.Registry, opts Options) (*mixer.Stream, error) {
	rate, channels, block := opts.format()

	st, err := reg.GetStream(rate, channels, block)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, mixer.ErrConcurrentStream) {
		return nil, fmt.Errorf("%w: %w", ErrSoundFormat, err)
	}

	st, serr := reg.GetSimilar(rate, mixer.Any, mixer.Any)
	if serr != nil || st == nil {
		return nil, fmt.Errorf("%w: %w", ErrSoundFormat, err)
	}
	return st, nil
}

func (s *Sound) applyOptions(opts Options) {
	if opts.Volume != 0 {
		s.src.SetVolume(opts.Volume)
	}
	if opts.Loops != 0 {
		s.src.SetLoops(opts.Loops)
	}
}

// Play starts or resumes the sound and schedules it on its stream.
func (s *Sound) Play() {
	s.src.Play()
	s.stream.Add(s.src)
}

// PlayLoops plays with n additional repeats; -1 repeats until stopped.
func (s *Sound) PlayLoops(n int) {
	s.src.SetLoops(n)
	s.Play()
}

// Pause holds the cursor. The sound stays scheduled and emits silence.
func (s *Sound) Pause() { s.src.Pause() }

// Stop cancels playback, resets the cursor and unschedules the sound.
func (s *Sound) Stop() {
	s.src.Stop()
	s.stream.Remove(s.src)
}

func (s *Sound) Status() source.Status { return s.src.Status() }

func (s *Sound) SetVolume(v float32) { s.src.SetVolume(v) }
func (s *Sound) Volume() float32     { return s.src.Volume() }

func (s *Sound) SetLoops(n int) { s.src.SetLoops(n) }
func (s *Sound) Loops() int     { return s.src.Loops() }

// Seek positions playback at the given offset into one playthrough.
func (s *Sound) Seek(offset time.Duration) error {
	frame := int64(offset.Seconds() * float64(s.src.SampleRate()))
	return s.src.Seek(frame)
}

// Duration reports the length of one playthrough, or 0 when unknown.
func (s *Sound) Duration() time.Duration {
	frames := s.src.Frames()
	if frames < 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(s.src.SampleRate())
}

// Stream exposes the output stream the sound plays on.
func (s *Sound) Stream() *mixer.Stream { return s.stream }

// Close unschedules the sound and releases any file resources. The output
// stream stays open for other sounds; closing it is the registry's job.
func (s *Sound) Close() error {
	s.stream.Remove(s.src)
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// memReader adapts an in-memory sample slice to the decode pipeline.
type memReader struct {
	rate     int
	channels int
	data     []float32
	pos      int
}

func (m *memReader) SampleRate() int { return m.rate }
func (m *memReader) Channels() int   { return m.channels }

func (m *memReader) Read(dst []float32) (int, error) {
	want := (len(dst) / m.channels) * m.channels
	left := len(m.data) - m.pos
	if left == 0 {
		return 0, io.EOF
	}
	if want > left {
		want = left
	}
	copy(dst, m.data[m.pos:m.pos+want])
	m.pos += want
	if m.pos == len(m.data) {
		return want / m.channels, io.EOF
	}
	return want / m.channels, nil
}
