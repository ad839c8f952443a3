// SPDX-License-Identifier: EPL-2.0

package pcmlab

import (
	"go.uber.org/zap"

	"github.com/ik5/pcmlab/audio"
)

// DefaultEnvelopePoints is the number of buckets in each Result envelope.
const DefaultEnvelopePoints = 1000

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = zap.NewNop()
		}
		p.logger = logger
	}
}

// WithRegistry replaces the decoder registry, which by default knows "mp3"
// and "wav".
func WithRegistry(registry *audio.Registry) Option {
	return func(p *Pipeline) {
		if registry != nil {
			p.registry = registry
		}
	}
}

// WithNormalization selects how decoded audio is brought into [-1, 1].
func WithNormalization(mode audio.NormalizeMode) Option {
	return func(p *Pipeline) { p.normalize = mode }
}

// WithResampleMethod selects the resampling algorithm.
func WithResampleMethod(method audio.ResampleMethod) Option {
	return func(p *Pipeline) { p.method = method }
}

// WithRounding selects how quantization resolves ties.
func WithRounding(rounding audio.Rounding) Option {
	return func(p *Pipeline) { p.rounding = rounding }
}

// WithEnvelopePoints sets the resolution of the Result envelopes.
// Zero disables them.
func WithEnvelopePoints(points int) Option {
	return func(p *Pipeline) { p.envelopePoints = max(points, 0) }
}
