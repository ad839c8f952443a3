// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded block of audio held in memory.
// Samples are interleaved when Channels > 1.
type Buffer struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// Validate reports whether b describes a usable buffer.
func (b Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.SampleRate)
	}
	if b.Channels < 1 {
		return fmt.Errorf("%w: channels %d", ErrInvalidBuffer, b.Channels)
	}
	if len(b.Samples)%b.Channels != 0 {
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidBuffer, len(b.Samples), b.Channels)
	}

	return nil
}

// Frames returns the number of sample frames (samples per channel).
func (b Buffer) Frames() int {
	if b.Channels < 1 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Seconds returns the buffer length in seconds.
func (b Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Duration is Seconds as a time.Duration.
func (b Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Clone returns a deep copy of b.
func (b Buffer) Clone() Buffer {
	out := b
	out.Samples = make([]float64, len(b.Samples))
	copy(out.Samples, b.Samples)
	return out
}

// bufferSource streams an in-memory Buffer.
type bufferSource struct {
	buf Buffer
	pos int
}

// NewBufferSource returns a Source reading the samples of buf.
// The buffer is not copied and must not be modified while the source is in use.
func NewBufferSource(buf Buffer) Source {
	return &bufferSource{buf: buf}
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float64) (int, error) {
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	// Whole frames only
	n := len(dst) - len(dst)%s.buf.Channels
	n = copy(dst[:n], s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src into a Buffer and closes it.
// A partial trailing frame is dropped.
func ReadAll(src Source) (buf Buffer, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	channels := src.Channels()
	if channels < 1 {
		return Buffer{}, fmt.Errorf("%w: channels %d", ErrInvalidBuffer, channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	buf = Buffer{
		Samples:    make([]float64, 0, size),
		SampleRate: src.SampleRate(),
		Channels:   channels,
	}
	chunk := make([]float64, size)
	stalls := 0

	for {
		n, rerr := src.ReadSamples(chunk)
		if n > 0 {
			buf.Samples = append(buf.Samples, chunk[:n]...)
			stalls = 0
		} else if rerr == nil {
			stalls++
			if stalls > 100 {
				return Buffer{}, io.ErrNoProgress
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return Buffer{}, fmt.Errorf("%w", rerr)
		}
	}

	buf.Samples = buf.Samples[:len(buf.Samples)-len(buf.Samples)%channels]

	return buf, nil
}
