// SPDX-License-Identifier: EPL-2.0

package pcmlab

import (
	"bytes"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/pcmlab/audio"
	"github.com/ik5/pcmlab/formats/mp3"
	"github.com/ik5/pcmlab/formats/wav"
)

// SourceBitDepth is the depth MP3 frames decode to. It sizes the estimate of
// the original signal.
const SourceBitDepth = 16

// Pipeline converts encoded audio into a mono, resampled and quantized
// signal. A Pipeline holds configuration only and is safe for concurrent use.
type Pipeline struct {
	logger   *zap.Logger
	registry *audio.Registry

	normalize      audio.NormalizeMode
	method         audio.ResampleMethod
	rounding       audio.Rounding
	envelopePoints int
}

// DefaultRegistry returns a registry with the "mp3" and "wav" decoders.
func DefaultRegistry() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("wav", wav.Decoder{})

	return registry
}

// NewPipeline returns a Pipeline with fixed normalization, FFT resampling,
// rounding half away from zero, DefaultEnvelopePoints envelope buckets, the
// DefaultRegistry decoders and no logging, changed by opts.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:         zap.NewNop(),
		registry:       DefaultRegistry(),
		normalize:      audio.NormalizeFixed,
		method:         audio.MethodFFT,
		rounding:       audio.RoundHalfAwayFromZero,
		envelopePoints: DefaultEnvelopePoints,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Decode decodes data with the decoder registered for format and returns a
// mono buffer normalized into [-1, 1].
func (p *Pipeline) Decode(data []byte, format string) (audio.Buffer, error) {
	buf, err := p.decode(data, format)
	if err != nil {
		return audio.Buffer{}, err
	}

	return p.prepare(buf)
}

func (p *Pipeline) decode(data []byte, format string) (audio.Buffer, error) {
	decoder, ok := p.registry.Get(format)
	if !ok {
		return audio.Buffer{}, fmt.Errorf("%w: %w: %q", ErrDecode, audio.ErrUnsupportedFormat, format)
	}

	src, err := decoder.Decode(bytes.NewReader(data))
	if err != nil {
		return audio.Buffer{}, decodeError(format, err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return audio.Buffer{}, decodeError(format, err)
	}
	if len(buf.Samples) == 0 {
		return audio.Buffer{}, fmt.Errorf("%w: %s stream holds no samples", ErrDecode, format)
	}

	p.logger.Debug("decoded",
		zap.String("format", format),
		zap.Int("bytes", len(data)),
		zap.Int("sample_rate", buf.SampleRate),
		zap.Int("channels", buf.Channels),
		zap.Duration("duration", buf.Duration()),
	)

	return buf, nil
}

func decodeError(format string, err error) error {
	if errors.Is(err, ErrDecode) {
		return fmt.Errorf("%s: %w", format, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
}

// prepare folds buf to mono and normalizes it.
func (p *Pipeline) prepare(buf audio.Buffer) (audio.Buffer, error) {
	mono, err := audio.Downmix(buf)
	if err != nil {
		return audio.Buffer{}, err
	}

	out, err := audio.Normalize(mono, p.normalize)
	if err != nil {
		return audio.Buffer{}, err
	}

	p.logger.Debug("prepared",
		zap.Int("channels_in", buf.Channels),
		zap.Stringer("normalization", p.normalize),
		zap.Float64("peak", audio.Peak(out)),
	)

	return out, nil
}

// Resample converts buf to targetRate with the configured method.
func (p *Pipeline) Resample(buf audio.Buffer, targetRate int) (audio.Buffer, error) {
	out, err := audio.Resample(buf, targetRate, p.method)
	if err != nil {
		return audio.Buffer{}, err
	}

	p.logger.Debug("resampled",
		zap.Stringer("method", p.method),
		zap.Int("from", buf.SampleRate),
		zap.Int("to", targetRate),
		zap.Int("frames_in", buf.Frames()),
		zap.Int("frames_out", out.Frames()),
	)

	return out, nil
}

// Quantize snaps buf to bitDepth with the configured rounding. bitDepth must
// be within [audio.MinBitDepth, audio.MaxBitDepth].
func (p *Pipeline) Quantize(buf audio.Buffer, bitDepth int) (audio.Quantized, error) {
	q, err := audio.QuantizeWith(buf, bitDepth, p.rounding)
	if err != nil {
		return audio.Quantized{}, err
	}

	p.logger.Debug("quantized",
		zap.Int("bit_depth", bitDepth),
		zap.Stringer("rounding", p.rounding),
	)

	return q, nil
}

// EncodeWAV returns q as a PCM WAV file and the container it was stored in.
// Depths without a container of their own are stored as signed 16-bit.
func (p *Pipeline) EncodeWAV(q audio.Quantized) ([]byte, wav.Container, error) {
	if _, fallback := wav.ContainerFor(q.BitDepth); fallback {
		p.logger.Warn("no wav container for bit depth, using default",
			zap.Int("bit_depth", q.BitDepth),
			zap.Stringer("container", wav.DefaultContainer),
		)
	}

	data, c, err := wav.EncodeBytes(q)
	if err != nil {
		return nil, wav.Container{}, err
	}

	p.logger.Debug("encoded",
		zap.Stringer("container", c),
		zap.Int("bytes", len(data)),
	)

	return data, c, nil
}

// EstimateSize is audio.EstimateSize.
func (p *Pipeline) EstimateSize(sampleRate, bitDepth, channels int, seconds float64) int {
	return audio.EstimateSize(sampleRate, bitDepth, channels, seconds)
}

// Process decodes data and runs it through ProcessBuffer.
func (p *Pipeline) Process(data []byte, format string, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	buf, err := p.decode(data, format)
	if err != nil {
		return nil, err
	}

	return p.ProcessBuffer(buf, params)
}

// ProcessBuffer reduces buf to mono, normalizes, resamples and quantizes it,
// then encodes the result as WAV. Any failure aborts the whole run.
func (p *Pipeline) ProcessBuffer(buf audio.Buffer, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	mono, err := p.prepare(buf)
	if err != nil {
		return nil, err
	}

	resampled, err := p.Resample(mono, params.SampleRate)
	if err != nil {
		return nil, err
	}

	q, err := p.Quantize(resampled, params.BitDepth)
	if err != nil {
		return nil, err
	}

	data, c, err := p.EncodeWAV(q)
	if err != nil {
		return nil, err
	}
	_, fallback := wav.ContainerFor(params.BitDepth)

	seconds := buf.Seconds()
	res := &Result{
		OriginalSampleRate:    buf.SampleRate,
		OriginalChannels:      buf.Channels,
		OriginalDuration:      buf.Duration(),
		Quantized:             q,
		WAV:                   data,
		ContainerBitDepth:     c.BitDepth,
		Fallback:              fallback,
		EstimatedSize:         p.EstimateSize(params.SampleRate, params.BitDepth, audio.EstimateChannels, seconds),
		OriginalEstimatedSize: p.EstimateSize(buf.SampleRate, SourceBitDepth, audio.EstimateChannels, seconds),
	}
	if p.envelopePoints > 0 {
		res.OriginalEnvelope = audio.Envelope(mono, p.envelopePoints)
		res.ProcessedEnvelope = audio.Envelope(q.Buffer, p.envelopePoints)
	}

	p.logger.Debug("processed",
		zap.Int("sample_rate", params.SampleRate),
		zap.Int("bit_depth", params.BitDepth),
		zap.Int("estimated_size", res.EstimatedSize),
		zap.Int("original_estimated_size", res.OriginalEstimatedSize),
	)

	return res, nil
}
