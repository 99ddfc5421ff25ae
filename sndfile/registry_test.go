// SPDX-License-Identifier: EPL-2.0

package sndfile

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(".wav", WAVDecoder{})

	if _, ok := reg.Get(".wav"); !ok {
		t.Error("Get(.wav) not found after Register")
	}
	if _, ok := reg.Get(".flac"); ok {
		t.Error("Get(.flac) found without Register")
	}
}

func TestDefaultRegistry_Extensions(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".wav", ".wave", ".aiff", ".aif", ".mp3", ".ogg", ".oga"} {
		if _, ok := defaultRegistry.Get(ext); !ok {
			t.Errorf("default registry missing %s", ext)
		}
	}
}

func TestOpen_UnknownExtension(t *testing.T) {
	t.Parallel()

	_, err := Open("beep.xyz")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Open(beep.xyz) error = %v, want ErrUnknownFormat", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Open("does-not-exist.wav")
	if err == nil {
		t.Error("Open() on missing file succeeded")
	}
}
