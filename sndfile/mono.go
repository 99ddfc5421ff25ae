// SPDX-License-Identifier: EPL-2.0

package sndfile

// MonoMixer folds a multi-channel Reader down to mono by averaging the
// channels of every frame. Mono input passes through untouched.
type MonoMixer struct {
	src Reader
	tmp []float32
}

func NewMonoMixer(src Reader) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Read(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	channels := m.src.Channels()
	if channels == 1 {
		return m.src.Read(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.Read(m.tmp)
	if n == 0 {
		return 0, err
	}

	inv := float32(1.0) / float32(channels)
	switch channels {
	case 2:
		for f := 0; f < n; f++ {
			dst[f] = (m.tmp[f*2] + m.tmp[f*2+1]) * 0.5
		}
	default:
		for f := 0; f < n; f++ {
			sum := float32(0)
			base := f * channels
			for c := 0; c < channels; c++ {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}
	return n, err
}
