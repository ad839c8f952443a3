// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates deterministic signals for tests.
package audiotest

import (
	"io"
	"math"

	"github.com/ik5/pcmlab/audio"
)

// Waveform returns the value of a sample for a frame index and channel.
type Waveform func(frame int, channel int) float64

// Sine returns a waveform of the given frequency and amplitude.
func Sine(sampleRate int, frequency, amplitude float64) Waveform {
	return func(frame int, _ int) float64 {
		t := float64(frame) / float64(sampleRate)
		return amplitude * math.Sin(2*math.Pi*frequency*t)
	}
}

// Constant returns a waveform with the same value everywhere.
func Constant(value float64) Waveform {
	return func(int, int) float64 { return value }
}

// Buffer renders frames frames of waveform into an interleaved buffer.
func Buffer(sampleRate, channels, frames int, waveform Waveform) audio.Buffer {
	samples := make([]float64, frames*channels)
	for f := range frames {
		for c := range channels {
			samples[f*channels+c] = waveform(f, c)
		}
	}

	return audio.Buffer{Samples: samples, SampleRate: sampleRate, Channels: channels}
}

// SineBuffer is a mono sine wave buffer.
func SineBuffer(sampleRate, frames int, frequency, amplitude float64) audio.Buffer {
	return Buffer(sampleRate, 1, frames, Sine(sampleRate, frequency, amplitude))
}

// MockSource is a test helper that generates audio data for testing.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int
	waveform     Waveform
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(0))
}

// NewSineSource creates a mock source that generates a full scale sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Sine(sampleRate, frequency, 1))
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, Constant(value))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float64) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}

	m.generated += frames
	written := frames * m.channels

	if m.generated >= m.totalSamples {
		return written, io.EOF
	}

	return written, nil
}
