// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ik5/pcmlab/audio"
)

func TestEstimateSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		bits     int
		channels int
		seconds  float64
		want     int
	}{
		{"cd mono", 44100, 16, 1, 1, 88200},
		{"cd stereo", 44100, 16, 2, 1, 176400},
		{"telephone", 8000, 8, 1, 2.5, 20000},
		{"odd depth rounds", 8000, 3, 1, 1.0 / 3, 1000},
		{"half byte rounds up", 1, 4, 1, 1, 1},
		{"zero duration", 44100, 16, 1, 0, 0},
		{"zero rate", 0, 16, 1, 1, 0},
		{"negative bits", 44100, -16, 1, 1, 0},
		{"no channels", 44100, 16, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, audio.EstimateSize(tt.rate, tt.bits, tt.channels, tt.seconds))
		})
	}
}
