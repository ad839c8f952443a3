// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/pcmlab/audio"
)

type wavSource struct {
	data       []int
	pos        int
	sampleRate int
	channels   int
	// offset subtracted before scaling, non-zero for unsigned 8-bit
	offset float64
	scale  float64
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return 4096 }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float64) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := min(len(dst), len(s.data)-s.pos)
	for i := range n {
		dst[i] = (float64(s.data[s.pos+i]) - s.offset) / s.scale
	}
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}

// Decoder reads PCM WAV files of 8, 16, 24 or 32 bits per sample.
// Samples are divided by the full scale of the stored depth.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading wav data: %w", audio.ErrDecode, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, ErrNotWavFile)
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: %w: audio format %d",
			audio.ErrDecode, ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	src := &wavSource{
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
	}
	switch bitDepth {
	case 8:
		src.offset = 128
		src.scale = 128
	case 16, 24, 32:
		src.scale = float64(int64(1) << (bitDepth - 1))
	default:
		return nil, fmt.Errorf("%w: %w: %d", audio.ErrDecode, ErrUnsupportedBitDepth, bitDepth)
	}
	if src.channels < 1 || src.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %w: %d channels @ %d Hz",
			audio.ErrDecode, ErrUnsupportedWavLayout, src.channels, src.sampleRate)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	src.data = pcm.Data

	return src, nil
}
