// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmlab/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation. Works on interleaved samples and preserves channel count.
// When downsampling a one-pole low-pass filter runs ahead of the
// interpolator. It is the cheap preview path; Resample with MethodFFT is
// the band-limited one.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float64
	hasFrame [4]bool
	primed   bool

	// position between frames[1] and frames[2], in source frames
	pos float64

	srcBuf []float64
	eof    bool

	filterState []float64
	useFilter   bool
	filterAlpha float64
}

// NewResampler wraps src. dstRate must be positive.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float64, channels),
		useFilter:   ratio > 1.0,
		filterState: make([]float64, channels),
	}
	if r.useFilter {
		// alpha = 1/ratio puts the -3dB point near the target Nyquist
		r.filterAlpha = 1 / ratio
	}

	for i := range r.frames {
		r.frames[i] = make([]float64, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one frame into dst, applying the low-pass filter.
func (r *Resampler) readFrame(dst []float64) (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	got := n == r.channels
	if got {
		copy(dst, r.srcBuf)
		if r.useFilter {
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	return got, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < 4; i++ {
		got, err := r.readFrame(r.frames[i])
		if err != nil && err != io.EOF {
			return err
		}
		if !got {
			break
		}
		if i == 1 {
			// Seed the filter and the t-1 slot with the raw first frame so
			// there is no warm-up transient
			if r.useFilter {
				copy(r.frames[1], r.srcBuf)
				copy(r.filterState, r.srcBuf)
			}
			copy(r.frames[0], r.frames[1])
			r.hasFrame[0] = true
		}
		r.hasFrame[i] = true
	}

	if !r.hasFrame[1] {
		return io.EOF
	}

	return nil
}

// advance shifts the ring by one source frame.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	got, err := r.readFrame(r.frames[3])
	if err != nil && err != io.EOF {
		return err
	}
	r.hasFrame[3] = got

	if !r.hasFrame[1] {
		return io.EOF
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float64) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			return written * r.channels, io.EOF
		}

		// Past the last frame only the final sample remains; hold it
		// for the fractional step.
		if !r.hasFrame[2] {
			if r.pos > 0 {
				return written * r.channels, io.EOF
			}
			copy(dst[written*r.channels:(written+1)*r.channels], r.frames[1])
			written++
			r.pos += r.ratio
			continue
		}

		for c := range r.channels {
			y1 := r.frames[1][c]
			y2 := r.frames[2][c]
			y0 := y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, r.pos)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
