// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer is the streaming counterpart of Downmix: it averages every
// frame of src into a single sample as the stream is read.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, defaultChunkSize),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

// Frames passes through the length of the underlying source.
func (m *MonoMixer) Frames() int64 { return Frames(m.src) }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples writes up to len(dst) mono samples and returns how many.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 2*defaultChunkSize))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	if channels == 2 {
		for f := range frames {
			i := f << 1
			dst[f] = (m.tmp[i] + m.tmp[i+1]) * 0.5
		}

		return frames, err
	}

	inv := float32(1.0) / float32(channels)
	for f := range frames {
		var sum float32
		frame := m.tmp[f*channels : (f+1)*channels]
		for _, v := range frame {
			sum += v
		}
		dst[f] = sum * inv
	}

	return frames, err
}
