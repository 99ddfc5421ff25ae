// SPDX-License-Identifier: EPL-2.0

package sndfile

import "sync"

// Registry maps file extensions (".wav", ".mp3", ...) to decoders.
type Registry struct {
	mtx    sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[ext] = d
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[ext]
	return d, ok
}

// defaultRegistry serves Open. All built-in formats are pre-registered.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(".wav", WAVDecoder{})
	r.Register(".wave", WAVDecoder{})
	r.Register(".aiff", AIFFDecoder{})
	r.Register(".aif", AIFFDecoder{})
	r.Register(".mp3", MP3Decoder{})
	r.Register(".ogg", VorbisDecoder{})
	r.Register(".oga", VorbisDecoder{})
	return r
}()
