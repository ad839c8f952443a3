// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/pcmlab/utils"
)

const (
	// MinBitDepth is the smallest depth with a non-zero positive level.
	MinBitDepth = 2
	// MaxBitDepth keeps every level exactly representable in a float64.
	MaxBitDepth = 53
)

// Rounding selects how samples exactly halfway between two levels resolve.
type Rounding int

const (
	// RoundHalfAwayFromZero is math.Round: 0.5 -> 1, -0.5 -> -1.
	RoundHalfAwayFromZero Rounding = iota
	// RoundHalfEven is math.RoundToEven: 0.5 -> 0, 1.5 -> 2.
	RoundHalfEven
)

func (r Rounding) String() string {
	switch r {
	case RoundHalfAwayFromZero:
		return "half-away-from-zero"
	case RoundHalfEven:
		return "half-even"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

func (r Rounding) round(x float64) float64 {
	if r == RoundHalfEven {
		return math.RoundToEven(x)
	}
	return math.Round(x)
}

// Quantized is a buffer whose samples sit on the levels of a signed
// BitDepth-bit linear PCM scale.
type Quantized struct {
	Buffer
	BitDepth int
}

// Levels returns the integer level of every sample.
func (q Quantized) Levels() []int64 {
	maxLevel := MaxLevel(q.BitDepth)
	levels := make([]int64, len(q.Samples))
	for i, s := range q.Samples {
		levels[i] = int64(math.Round(s * maxLevel))
	}
	return levels
}

// MaxLevel returns 2^(bitDepth-1) - 1, the largest positive level.
func MaxLevel(bitDepth int) float64 {
	return math.Exp2(float64(bitDepth-1)) - 1
}

// ValidateBitDepth reports whether bitDepth can be quantized to.
func ValidateBitDepth(bitDepth int) error {
	if bitDepth < MinBitDepth || bitDepth > MaxBitDepth {
		return fmt.Errorf("%w: bit depth %d outside [%d, %d]",
			ErrInvalidParameter, bitDepth, MinBitDepth, MaxBitDepth)
	}
	return nil
}

// Quantize snaps every sample of buf to the nearest level of a signed
// bitDepth-bit scale, rounding ties away from zero.
//
// bitDepth must be in [MinBitDepth, MaxBitDepth], that is 2 to 53. Depth 1
// has no positive level, and above 53 bits the levels are no longer exact in
// a float64. Anything else fails with ErrInvalidParameter.
func Quantize(buf Buffer, bitDepth int) (Quantized, error) {
	return QuantizeWith(buf, bitDepth, RoundHalfAwayFromZero)
}

// QuantizeWith is Quantize with an explicit tie-breaking rule. It accepts
// the same bit depths, 2 to 53. Samples are clamped to [-1, 1] first.
func QuantizeWith(buf Buffer, bitDepth int, rounding Rounding) (Quantized, error) {
	if err := ValidateBitDepth(bitDepth); err != nil {
		return Quantized{}, err
	}
	if err := buf.Validate(); err != nil {
		return Quantized{}, err
	}

	maxLevel := MaxLevel(bitDepth)
	out := make([]float64, len(buf.Samples))
	for i, s := range buf.Samples {
		out[i] = rounding.round(utils.Clamp(s)*maxLevel) / maxLevel
	}

	return Quantized{
		Buffer: Buffer{
			Samples:    out,
			SampleRate: buf.SampleRate,
			Channels:   buf.Channels,
		},
		BitDepth: bitDepth,
	}, nil
}
