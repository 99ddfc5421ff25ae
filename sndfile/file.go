// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is an open sound file: the decoded stream plus ownership of the
// underlying OS file handle.
type File struct {
	Stream
	f *os.File
}

// Open opens path with the decoder registered for its extension.
func Open(path string) (*File, error) {
	return OpenWith(defaultRegistry, path)
}

// OpenWith is Open against an explicit decoder registry.
func OpenWith(reg *Registry, path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sound file: %w", err)
	}

	st, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &File{Stream: st, f: f}, nil
}

// Close releases the decoder and the file handle.
func (f *File) Close() error {
	return errors.Join(f.Stream.Close(), f.f.Close())
}
