// SPDX-License-Identifier: EPL-2.0

package audio

import "gonum.org/v1/gonum/floats"

// EnvelopePoint is the extent of one plot bucket.
type EnvelopePoint struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Envelope splits the first channel of buf into at most points buckets and
// returns the minimum and maximum of each, which is enough to draw the
// waveform at any width without shipping every sample.
func Envelope(buf Buffer, points int) []EnvelopePoint {
	frames := buf.Frames()
	if points <= 0 || frames == 0 {
		return []EnvelopePoint{}
	}

	channel := buf.Samples
	if buf.Channels > 1 {
		channel = make([]float64, frames)
		for f := range frames {
			channel[f] = buf.Samples[f*buf.Channels]
		}
	}

	points = min(points, frames)
	peaks := make([]EnvelopePoint, points)
	for p := range points {
		start := p * frames / points
		end := (p + 1) * frames / points
		bucket := channel[start:end]
		peaks[p] = EnvelopePoint{Min: floats.Min(bucket), Max: floats.Max(bucket)}
	}

	return peaks
}
