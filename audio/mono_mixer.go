// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds a multi-channel Source into one channel by taking the
// arithmetic mean of every frame.
type MonoMixer struct {
	src Source
	tmp []float64
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float64, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.src.Channels() == 1 {
		return m.src.ReadSamples(dst)
	}

	channels := m.src.Channels()
	samplesNeeded := len(dst) * channels

	// Grow tmp if needed, never shrink
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float64, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		div := float64(channels)
		for f := range frames {
			sum := 0.0
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum / div
		}
	}

	return frames, err
}

// Downmix reduces buf to a single channel. Mono input is returned as a copy.
func Downmix(buf Buffer) (Buffer, error) {
	if err := buf.Validate(); err != nil {
		return Buffer{}, err
	}
	if buf.Channels == 1 {
		return buf.Clone(), nil
	}
	if len(buf.Samples) == 0 {
		return Buffer{SampleRate: buf.SampleRate, Channels: 1, Samples: []float64{}}, nil
	}

	mono, err := ReadAll(NewMonoMixer(NewBufferSource(buf)))
	if err != nil {
		return Buffer{}, err
	}

	return mono, nil
}
