// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmlab/audio"
	"github.com/ik5/pcmlab/internal/audiotest"
)

var methods = []audio.ResampleMethod{audio.MethodFFT, audio.MethodCubic}

func TestResample_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	for _, method := range methods {
		t.Run(method.String(), func(t *testing.T) {
			t.Parallel()

			in := audiotest.SineBuffer(44100, 4410, 440, 0.8)
			out, err := audio.Resample(in, 44100, method)
			require.NoError(t, err)

			assert.Equal(t, in, out)
			out.Samples[0] = 42
			assert.NotEqual(t, 42.0, in.Samples[0], "result aliases the input")
		})
	}
}

func TestResample_FFTLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		srcRate, dstRate, frames int
	}{
		{44100, 8000, 44100},
		{44100, 22050, 44101},
		{8000, 44100, 8000},
		{48000, 44100, 1000},
		{44100, 1000, 44100},
		{44100, 1, 44100},
		{8000, 48000, 3},
		{44100, 8000, 200_001},
		{16000, 44100, 99_999},
	}

	for _, tt := range tests {
		in := audiotest.SineBuffer(tt.srcRate, tt.frames, 100, 0.5)
		out, err := audio.Resample(in, tt.dstRate, audio.MethodFFT)
		require.NoError(t, err)

		want := int(math.Round(float64(tt.frames) * float64(tt.dstRate) / float64(tt.srcRate)))
		assert.Equal(t, want, out.Frames(), "%d -> %d Hz", tt.srcRate, tt.dstRate)
		assert.Equal(t, want, audio.ResampledLength(tt.frames, tt.srcRate, tt.dstRate))
		assert.Equal(t, tt.dstRate, out.SampleRate)
		for i, s := range out.Samples {
			require.False(t, math.IsNaN(s) || math.IsInf(s, 0), "sample %d = %v", i, s)
		}
	}
}

func TestResample_RoundTripKeepsEnergy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method  audio.ResampleMethod
		epsilon float64
	}{
		{audio.MethodFFT, 0.10},
		// the anti-alias pole also attenuates the passband a little
		{audio.MethodCubic, 0.15},
	}

	for _, tt := range tests {
		method := tt.method
		t.Run(method.String(), func(t *testing.T) {
			t.Parallel()

			in := audiotest.SineBuffer(44100, 44100, 440, 0.8)

			down, err := audio.Resample(in, 8000, method)
			require.NoError(t, err)
			up, err := audio.Resample(down, 44100, method)
			require.NoError(t, err)

			want := audio.Energy(in)
			assert.InEpsilon(t, want, audio.Energy(up), tt.epsilon)
		})
	}
}

func TestResample_FFTPreservesBandLimitedSine(t *testing.T) {
	t.Parallel()

	// 440 Hz completes a whole number of periods in one second, so the
	// spectrum is a single bin and resampling is exact
	in := audiotest.SineBuffer(44100, 44100, 440, 0.8)
	out, err := audio.Resample(in, 8000, audio.MethodFFT)
	require.NoError(t, err)

	want := audiotest.SineBuffer(8000, 8000, 440, 0.8)
	require.Len(t, out.Samples, len(want.Samples))
	for i := range want.Samples {
		require.InDelta(t, want.Samples[i], out.Samples[i], 1e-6, "sample %d", i)
	}
}

func TestResample_FFTStereo(t *testing.T) {
	t.Parallel()

	in := audiotest.Buffer(16000, 2, 1600, func(frame, channel int) float64 {
		if channel == 0 {
			return 0.5
		}
		return -0.25
	})
	out, err := audio.Resample(in, 8000, audio.MethodFFT)
	require.NoError(t, err)

	require.Equal(t, 2, out.Channels)
	require.Equal(t, 800, out.Frames())
	for f := range out.Frames() {
		assert.InDelta(t, 0.5, out.Samples[2*f], 1e-9)
		assert.InDelta(t, -0.25, out.Samples[2*f+1], 1e-9)
	}
}

func TestResample_Empty(t *testing.T) {
	t.Parallel()

	for _, method := range methods {
		out, err := audio.Resample(audio.Buffer{SampleRate: 44100, Channels: 1}, 8000, method)
		require.NoError(t, err)
		assert.Empty(t, out.Samples)
		assert.Equal(t, 8000, out.SampleRate)
	}
}

func TestResample_InvalidParameters(t *testing.T) {
	t.Parallel()

	in := audiotest.SineBuffer(44100, 100, 440, 0.5)

	for _, rate := range []int{0, -8000} {
		_, err := audio.Resample(in, rate, audio.MethodFFT)
		assert.ErrorIs(t, err, audio.ErrInvalidParameter)
	}

	_, err := audio.Resample(in, 8000, audio.ResampleMethod(99))
	assert.ErrorIs(t, err, audio.ErrInvalidParameter)

	_, err = audio.Resample(audio.Buffer{Samples: []float64{0}, Channels: 1}, 8000, audio.MethodFFT)
	assert.ErrorIs(t, err, audio.ErrInvalidBuffer)
}

func TestParseResampleMethod(t *testing.T) {
	t.Parallel()

	for _, method := range methods {
		got, err := audio.ParseResampleMethod(method.String())
		require.NoError(t, err)
		assert.Equal(t, method, got)
	}

	_, err := audio.ParseResampleMethod("sinc")
	assert.ErrorIs(t, err, audio.ErrInvalidParameter)
}

// A three minute song has to resample in memory proportional to its length.
func TestResample_FFTLongInputMemory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping three minute resample in short mode")
	}

	const frames = 44100*180 + 1
	in := audiotest.SineBuffer(44100, frames, 440, 0.8)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	out, err := audio.Resample(in, 8000, audio.MethodFFT)
	runtime.ReadMemStats(&after)
	require.NoError(t, err)

	require.Equal(t, audio.ResampledLength(frames, 44100, 8000), out.Frames())

	allocated := after.TotalAlloc - before.TotalAlloc
	outputBytes := uint64(len(out.Samples)) * 8
	assert.Less(t, allocated, 4*outputBytes, "allocated %d MB", allocated>>20)

	// Away from the ends the tone passes the band limit untouched
	want := audiotest.SineBuffer(8000, out.Frames(), 440, 0.8)
	for i := 8000; i < out.Frames()-8000; i += 997 {
		require.InDelta(t, want.Samples[i], out.Samples[i], 1e-3, "sample %d", i)
	}
}

func BenchmarkResample_FFTThreeMinutes(b *testing.B) {
	in := audiotest.SineBuffer(44100, 44100*180+1, 440, 0.8)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := audio.Resample(in, 8000, audio.MethodFFT); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResample_FFT(b *testing.B) {
	in := audiotest.SineBuffer(44100, 44100, 440, 0.8)

	for b.Loop() {
		if _, err := audio.Resample(in, 8000, audio.MethodFFT); err != nil {
			b.Fatal(err)
		}
	}
}
