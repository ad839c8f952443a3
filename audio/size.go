// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// EstimateChannels is the channel count used for size estimates. Decoded
// audio is always folded to mono before it is resampled, so the estimate
// describes one channel.
const EstimateChannels = 1

// EstimateSize returns the illustrative byte size of uncompressed PCM audio:
// sampleRate * bitDepth * channels * seconds / 8, rounded to the nearest byte.
// Non-positive inputs yield 0.
func EstimateSize(sampleRate, bitDepth, channels int, seconds float64) int {
	if sampleRate <= 0 || bitDepth <= 0 || channels <= 0 || !(seconds > 0) {
		return 0
	}

	bits := float64(sampleRate) * float64(bitDepth) * float64(channels) * seconds
	return int(math.Round(bits / 8))
}
