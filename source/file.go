// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"io"
	"time"

	"github.com/Brit1317/sndmix/sndfile"
)

// FileOptions shapes how a sound file is decoded for playback.
type FileOptions struct {
	// SampleRate resamples the material to the given rate. 0 keeps the
	// file's own rate.
	SampleRate int
	// Mono folds multichannel material down to one channel.
	Mono bool
	// Start trims material before this offset.
	Start time.Duration
	// Stop trims material after this offset. 0 plays to the end.
	Stop time.Duration
	// Streaming decodes inside the audio callback instead of buffering the
	// whole file up front. Cheaper on memory, costlier per block.
	Streaming bool
}

// FileSource plays a decoded sound file, either fully buffered in memory or
// streamed from disk block by block.
type FileSource struct {
	playback
	sampleRate int
	channels   int
	frames     int64

	// buffered mode
	data []float32
	pos  int64

	// streaming mode
	file       *sndfile.File
	reader     sndfile.Reader
	fileRate   int
	startFrame int64
	endFrame   int64 // exclusive file frame, -1 = end of material
	opts       FileOptions
}

// NewFileSource opens and prepares path for playback.
func NewFileSource(path string, opts FileOptions) (*FileSource, error) {
	f, err := sndfile.Open(path)
	if err != nil {
		return nil, err
	}

	startFrame := framesAt(opts.Start, f.SampleRate())
	endFrame := int64(-1)
	if opts.Stop > 0 {
		endFrame = framesAt(opts.Stop, f.SampleRate())
		if endFrame < startFrame {
			f.Close()
			return nil, fmt.Errorf("%w: stop %v before start %v", ErrSeekRange, opts.Stop, opts.Start)
		}
	}

	if err := f.Seek(startFrame); err != nil {
		f.Close()
		return nil, fmt.Errorf("trimming %s: %w", path, err)
	}

	r := buildPipeline(f, startFrame, endFrame, opts)

	s := &FileSource{
		sampleRate: r.SampleRate(),
		channels:   r.Channels(),
		fileRate:   f.SampleRate(),
		startFrame: startFrame,
		endFrame:   endFrame,
		opts:       opts,
	}
	s.frames = trimmedFrames(f.Frames(), startFrame, endFrame, s.fileRate, s.sampleRate)

	if opts.Streaming {
		s.file = f
		s.reader = r
		s.playback = newPlayback(s.rewindStream)
		return s, nil
	}

	data, err := sndfile.ReadAll(r)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("buffering %s: %w", path, err)
	}
	s.data = data
	s.frames = int64(len(data) / s.channels)
	s.playback = newPlayback(func() { s.pos = 0 })
	return s, nil
}

func (s *FileSource) SampleRate() int { return s.sampleRate }
func (s *FileSource) Channels() int   { return s.channels }
func (s *FileSource) Frames() int64   { return s.frames }

// Close releases the underlying file in streaming mode. Buffered sources
// hold no resources.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.reader = nil
	return err
}

func (s *FileSource) Seek(frame int64) error {
	if frame < 0 || (s.frames >= 0 && frame > s.frames) {
		return fmt.Errorf("%w: frame %d of %d", ErrSeekRange, frame, s.frames)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		s.pos = frame
		return nil
	}

	fileFrame := s.startFrame + frame*int64(s.fileRate)/int64(s.sampleRate)
	if err := s.file.Seek(fileFrame); err != nil {
		return fmt.Errorf("seeking file source: %w", err)
	}
	s.reader = buildPipeline(s.file, fileFrame, s.endFrame, s.opts)
	return nil
}

func (s *FileSource) NextBlock(dst []float32) (int, error) {
	return s.nextBlock(dst, s.channels, s.readOut)
}

func (s *FileSource) readOut(dst []float32) int {
	if s.data != nil {
		frames := len(dst) / s.channels
		left := s.frames - s.pos
		if int64(frames) > left {
			frames = int(left)
		}
		start := s.pos * int64(s.channels)
		copy(dst, s.data[start:start+int64(frames*s.channels)])
		s.pos += int64(frames)
		return frames
	}

	if s.reader == nil {
		return 0
	}
	want := len(dst) / s.channels
	total := 0
	for total < want {
		n, err := s.reader.Read(dst[total*s.channels : want*s.channels])
		total += n
		if err != nil || n == 0 {
			break
		}
	}
	return total
}

// rewindStream seeks back to the trim start and rebuilds the decode
// pipeline, dropping resampler and downmix state.
func (s *FileSource) rewindStream() {
	if s.file == nil {
		return
	}
	if err := s.file.Seek(s.startFrame); err != nil {
		return
	}
	s.reader = buildPipeline(s.file, s.startFrame, s.endFrame, s.opts)
}

// buildPipeline stacks trim, downmix and resample stages over the decoded
// file as the options require.
func buildPipeline(f *sndfile.File, start, end int64, opts FileOptions) sndfile.Reader {
	var r sndfile.Reader = f
	if end >= 0 {
		r = &limitedReader{src: r, left: end - start}
	}
	if opts.Mono && f.Channels() > 1 {
		r = sndfile.NewMonoMixer(r)
	}
	if opts.SampleRate > 0 && opts.SampleRate != f.SampleRate() {
		r = sndfile.NewResampler(r, opts.SampleRate)
	}
	return r
}

// limitedReader cuts a Reader off after a fixed number of frames.
type limitedReader struct {
	src  sndfile.Reader
	left int64
}

func (l *limitedReader) SampleRate() int { return l.src.SampleRate() }
func (l *limitedReader) Channels() int   { return l.src.Channels() }

func (l *limitedReader) Read(dst []float32) (int, error) {
	if l.left <= 0 {
		return 0, io.EOF
	}
	channels := l.src.Channels()
	want := int64(len(dst) / channels)
	if want > l.left {
		want = l.left
	}
	n, err := l.src.Read(dst[:want*int64(channels)])
	l.left -= int64(n)
	if l.left <= 0 && err == nil {
		err = io.EOF
	}
	return n, err
}

func framesAt(d time.Duration, rate int) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d.Seconds() * float64(rate))
}

// trimmedFrames converts a container frame count to playable frames after
// trimming and resampling. Unknown lengths stay unknown.
func trimmedFrames(total, start, end int64, fileRate, outRate int) int64 {
	if total < 0 {
		if end < 0 {
			return -1
		}
		total = end
	}
	if end >= 0 && end < total {
		total = end
	}
	total -= start
	if total < 0 {
		total = 0
	}
	if outRate != fileRate {
		total = total * int64(outRate) / int64(fileRate)
	}
	return total
}
