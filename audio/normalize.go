// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ik5/pcmlab/utils"
)

// NormalizeMode selects how decoded samples are brought into [-1, 1].
type NormalizeMode int

const (
	// NormalizeFixed trusts the decoder, which already divided every sample
	// by the largest magnitude of the source bit depth (32768 for 16-bit).
	// The same input always yields the same scale. Only clamping is applied.
	NormalizeFixed NormalizeMode = iota
	// NormalizePeak divides by the largest absolute sample so the loudest
	// sample lands on ±1. Silent buffers are left untouched.
	NormalizePeak
)

func (m NormalizeMode) String() string {
	switch m {
	case NormalizeFixed:
		return "fixed"
	case NormalizePeak:
		return "peak"
	default:
		return fmt.Sprintf("NormalizeMode(%d)", int(m))
	}
}

// ParseNormalizeMode maps "fixed" or "peak" to a NormalizeMode.
func ParseNormalizeMode(s string) (NormalizeMode, error) {
	switch s {
	case "fixed", "":
		return NormalizeFixed, nil
	case "peak":
		return NormalizePeak, nil
	default:
		return 0, fmt.Errorf("%w: normalization %q", ErrInvalidParameter, s)
	}
}

// Peak returns the largest absolute sample value of buf, 0 when empty.
func Peak(buf Buffer) float64 {
	if len(buf.Samples) == 0 {
		return 0
	}
	return math.Max(floats.Max(buf.Samples), -floats.Min(buf.Samples))
}

// Energy returns the sum of squares of all samples.
func Energy(buf Buffer) float64 {
	return floats.Dot(buf.Samples, buf.Samples)
}

// Normalize returns a copy of buf scaled into [-1, 1] according to mode.
func Normalize(buf Buffer, mode NormalizeMode) (Buffer, error) {
	if err := buf.Validate(); err != nil {
		return Buffer{}, err
	}

	out := buf.Clone()

	switch mode {
	case NormalizeFixed:
	case NormalizePeak:
		peak := Peak(out)
		if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
			break
		}
		floats.Scale(1/peak, out.Samples)
	default:
		return Buffer{}, fmt.Errorf("%w: normalization %d", ErrInvalidParameter, int(mode))
	}

	for i, s := range out.Samples {
		out.Samples[i] = utils.Clamp(s)
	}

	return out, nil
}
