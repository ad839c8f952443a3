// SPDX-License-Identifier: EPL-2.0

package pcmlab

import (
	"fmt"
	"time"

	"github.com/ik5/pcmlab/audio"
)

// Params are the per-invocation conversion targets.
type Params struct {
	SampleRate int
	BitDepth   int
}

// Validate reports whether p can be processed.
func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, p.SampleRate)
	}
	return audio.ValidateBitDepth(p.BitDepth)
}

// Result is the outcome of one Process call.
type Result struct {
	OriginalSampleRate int
	OriginalChannels   int
	OriginalDuration   time.Duration

	// Quantized is the mono signal at the target rate and depth.
	Quantized audio.Quantized
	// WAV is Quantized as a playable PCM WAV file.
	WAV []byte
	// ContainerBitDepth is the bit depth stored in WAV. It differs from the
	// requested depth when Fallback is set.
	ContainerBitDepth int
	Fallback          bool

	// Size estimates in bytes, advisory only.
	EstimatedSize         int
	OriginalEstimatedSize int

	OriginalEnvelope  []audio.EnvelopePoint
	ProcessedEnvelope []audio.EnvelopePoint
}
