// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ResampleMethod selects the algorithm used by Resample.
type ResampleMethod int

const (
	// MethodFFT resamples in the frequency domain: the spectrum is truncated
	// (downsampling) or zero padded (upsampling), so the result is band
	// limited to the lower of the two Nyquist frequencies. Channels longer
	// than a second or so are processed in overlapping blocks, which keeps
	// time and memory linear in the input length.
	MethodFFT ResampleMethod = iota
	// MethodCubic streams through the Catmull-Rom Resampler.
	MethodCubic
)

func (m ResampleMethod) String() string {
	switch m {
	case MethodFFT:
		return "fft"
	case MethodCubic:
		return "cubic"
	default:
		return fmt.Sprintf("ResampleMethod(%d)", int(m))
	}
}

// ParseResampleMethod maps "fft" or "cubic" to a ResampleMethod.
func ParseResampleMethod(s string) (ResampleMethod, error) {
	switch s {
	case "fft", "":
		return MethodFFT, nil
	case "cubic":
		return MethodCubic, nil
	default:
		return 0, fmt.Errorf("%w: resample method %q", ErrInvalidParameter, s)
	}
}

// ResampledLength is the frame count Resample produces with MethodFFT.
func ResampledLength(frames, srcRate, dstRate int) int {
	if frames == 0 || srcRate <= 0 || dstRate <= 0 {
		return 0
	}
	return int(math.Round(float64(frames) * float64(dstRate) / float64(srcRate)))
}

// Resample converts buf to targetRate. Equal rates return a copy and an
// empty buffer yields an empty buffer.
func Resample(buf Buffer, targetRate int, method ResampleMethod) (Buffer, error) {
	if targetRate <= 0 {
		return Buffer{}, fmt.Errorf("%w: target sample rate %d", ErrInvalidParameter, targetRate)
	}
	if err := buf.Validate(); err != nil {
		return Buffer{}, err
	}

	if targetRate == buf.SampleRate {
		return buf.Clone(), nil
	}
	if len(buf.Samples) == 0 {
		return Buffer{Samples: []float64{}, SampleRate: targetRate, Channels: buf.Channels}, nil
	}

	var (
		out Buffer
		err error
	)
	switch method {
	case MethodFFT:
		out = resampleFFT(buf, targetRate)
	case MethodCubic:
		out, err = ReadAll(NewResampler(NewBufferSource(buf), targetRate))
		if err != nil {
			return Buffer{}, fmt.Errorf("cubic resample: %w", err)
		}
	default:
		return Buffer{}, fmt.Errorf("%w: resample method %d", ErrInvalidParameter, int(method))
	}

	for i, s := range out.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			out.Samples[i] = 0
		}
	}

	return out, nil
}

func resampleFFT(buf Buffer, targetRate int) Buffer {
	frames := buf.Frames()
	outFrames := ResampledLength(frames, buf.SampleRate, targetRate)

	out := Buffer{
		Samples:    make([]float64, outFrames*buf.Channels),
		SampleRate: targetRate,
		Channels:   buf.Channels,
	}
	if outFrames == 0 {
		return out
	}

	plan := newFFTPlan(frames, outFrames, buf.SampleRate, targetRate)

	if buf.Channels == 1 {
		plan.run(out.Samples, buf.Samples)
		return out
	}

	channel := make([]float64, frames)
	resampled := make([]float64, outFrames)
	for c := range buf.Channels {
		for f := range frames {
			channel[f] = buf.Samples[f*buf.Channels+c]
		}

		plan.run(resampled, channel)
		for f, s := range resampled {
			out.Samples[f*buf.Channels+c] = s
		}
	}

	return out
}

const (
	// wholeSignalFrames is the longest channel resampled with a single
	// transform. Longer channels go through overlapping blocks.
	wholeSignalFrames = 1 << 16
	// blockFrames and marginFrames are the minimum hop and the minimum
	// context on each side of a block, in source frames.
	blockFrames  = 1 << 15
	marginFrames = 1 << 13
	// maxFastPrime is the largest prime factor a transform length may have
	// to go through the mixed-radix FFT.
	maxFastPrime = 61
)

// fftPlan resamples channels of a fixed length.
//
// Short channels are transformed whole. Long ones are cut into windows of
// hop source frames plus margin frames of context on each side; every window
// is resampled on its own and only its centre is kept. hop and margin are
// multiples of srcRate/gcd, so each window maps onto a whole number of output
// frames and consecutive centres line up exactly.
type fftPlan struct {
	block *spectralResampler

	hop, margin       int // source frames, hop == 0 for a single transform
	outHop, outMargin int

	window    []float64
	resampled []float64
}

func newFFTPlan(frames, outFrames, srcRate, dstRate int) *fftPlan {
	if frames <= wholeSignalFrames {
		return &fftPlan{block: newSpectralResampler(frames, outFrames)}
	}

	g := gcd(srcRate, dstRate)
	p, q := srcRate/g, dstRate/g

	hopUnits := ceilDiv(blockFrames, p)
	marginUnits := ceilDiv(marginFrames, p)
	size := hopUnits + 2*marginUnits
	if fastLength(p) && fastLength(q) {
		size = nextFastLength(size)
		hopUnits = size - 2*marginUnits
	}

	return &fftPlan{
		block:     newSpectralResampler(size*p, size*q),
		hop:       hopUnits * p,
		margin:    marginUnits * p,
		outHop:    hopUnits * q,
		outMargin: marginUnits * q,
		window:    make([]float64, size*p),
		resampled: make([]float64, size*q),
	}
}

// run resamples src into dst. len(dst) is the output frame count.
func (p *fftPlan) run(dst, src []float64) {
	if p.hop == 0 {
		p.block.resample(dst, src)
		return
	}

	for start, outStart := 0, 0; outStart < len(dst); start, outStart = start+p.hop, outStart+p.outHop {
		lo := start - p.margin
		if lo >= 0 && lo+len(p.window) <= len(src) {
			copy(p.window, src[lo:])
		} else {
			// Past either end the channel repeats, as it does for a single
			// transform
			n := len(src)
			for i := range p.window {
				p.window[i] = src[((lo+i)%n+n)%n]
			}
		}

		p.block.resample(p.resampled, p.window)
		copy(dst[outStart:], p.resampled[p.outMargin:p.outMargin+p.outHop])
	}
}

// spectralResampler maps n real samples onto m by copying the lower
// min(n, m) bins of their spectrum into an m point spectrum. Lengths whose
// prime factors are all small use gonum's mixed-radix FFT with reused
// buffers; anything else goes through go-dsp, which handles every length in
// O(n log n).
type spectralResampler struct {
	n, m     int
	fwd, inv *fourier.FFT
	in, out  []complex128
}

func newSpectralResampler(n, m int) *spectralResampler {
	s := &spectralResampler{n: n, m: m}
	if n > 1 && m > 1 && fastLength(n) && fastLength(m) {
		s.fwd = fourier.NewFFT(n)
		s.inv = fourier.NewFFT(m)
		s.in = make([]complex128, n/2+1)
		s.out = make([]complex128, m/2+1)
	}
	return s
}

// resample writes the m resampled points of x, which holds n, into dst.
func (s *spectralResampler) resample(dst, x []float64) {
	if s.fwd == nil {
		copy(dst, resampleSpectrum(x, s.m))
		return
	}

	s.in = s.fwd.Coefficients(s.in, x)
	clear(s.out)

	n := min(s.n, s.m)
	half := n / 2
	copy(s.out[:half+1], s.in[:half+1])
	// An even n leaves one shared Nyquist bin that has to be split or joined
	if n%2 == 0 {
		switch {
		case s.m < s.n:
			s.out[half] = complex(2*real(s.in[half]), 0)
		case s.m > s.n:
			s.out[half] *= 0.5
		}
	}

	// gonum does not normalize the inverse transform
	s.inv.Sequence(dst, s.out)
	floats.Scale(1/float64(s.n), dst)
}

// resampleSpectrum is the go-dsp rendition of spectralResampler for lengths
// the mixed-radix FFT would handle slowly.
func resampleSpectrum(x []float64, m int) []float64 {
	nx := len(x)
	spectrum := fft.FFTReal(x)

	n := min(nx, m)
	half := n / 2
	y := make([]complex128, m)

	// DC and positive frequencies, Nyquist included when present
	copy(y[:half+1], spectrum[:half+1])
	// Negative frequencies
	for k := 1; k < n-half; k++ {
		y[m-k] = spectrum[nx-k]
	}

	if n%2 == 0 {
		switch {
		case m < nx:
			y[half] += spectrum[nx-half]
		case m > nx:
			y[half] *= 0.5
			y[m-half] = y[half]
		}
	}

	inverse := fft.IFFT(y)
	scale := float64(m) / float64(nx)

	out := make([]float64, m)
	for i, v := range inverse {
		out[i] = real(v) * scale
	}

	return out
}

// fastLength reports whether every prime factor of n is at most maxFastPrime.
func fastLength(n int) bool {
	if n < 1 {
		return false
	}
	for f := 2; f <= maxFastPrime && n > 1; f++ {
		for n%f == 0 {
			n /= f
		}
	}
	return n == 1
}

func nextFastLength(n int) int {
	for !fastLength(n) {
		n++
	}
	return n
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
