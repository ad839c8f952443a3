// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/pcmlab/audio"
	"github.com/ik5/pcmlab/utils"
)

// formatPCM is the WAVE_FORMAT_PCM tag.
const formatPCM = 1

// Container is the sample layout actually stored in the WAV file.
type Container struct {
	BitDepth int
	Signed   bool
}

func (c Container) String() string {
	if c.Signed {
		return fmt.Sprintf("signed %d-bit PCM", c.BitDepth)
	}
	return fmt.Sprintf("unsigned %d-bit PCM", c.BitDepth)
}

// maxLevel is the largest positive level written for this container.
func (c Container) maxLevel() int {
	return 1<<(c.BitDepth-1) - 1
}

// DefaultContainer stores every bit depth the container table does not map.
var DefaultContainer = Container{BitDepth: 16, Signed: true}

// containers maps a requested quantization depth to the WAV layout that can
// hold it without loss.
var containers = map[int]Container{
	8:  {BitDepth: 8, Signed: false},
	16: {BitDepth: 16, Signed: true},
	24: {BitDepth: 24, Signed: true},
}

// ContainerFor returns the container used for bitDepth. fallback is true
// when bitDepth has no container of its own and DefaultContainer is used;
// the file then holds the quantized signal at 16-bit resolution.
func ContainerFor(bitDepth int) (c Container, fallback bool) {
	if c, ok := containers[bitDepth]; ok {
		return c, false
	}
	return DefaultContainer, true
}

// Encode writes q as a PCM WAV file to w and returns the container used.
func Encode(w io.WriteSeeker, q audio.Quantized) (Container, error) {
	if err := q.Validate(); err != nil {
		return Container{}, fmt.Errorf("wav encode: %w", err)
	}

	c, _ := ContainerFor(q.BitDepth)
	maxLevel := c.maxLevel()

	data := make([]int, len(q.Samples))
	for i, s := range q.Samples {
		v := utils.FloatToLevel(s, maxLevel)
		if !c.Signed {
			v += maxLevel + 1
		}
		data[i] = v
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: q.Channels,
			SampleRate:  q.SampleRate,
		},
		Data:           data,
		SourceBitDepth: c.BitDepth,
	}

	enc := gowav.NewEncoder(w, q.SampleRate, c.BitDepth, q.Channels, formatPCM)
	if err := enc.Write(buf); err != nil {
		return Container{}, fmt.Errorf("wav encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return Container{}, fmt.Errorf("wav encode: %w", err)
	}

	return c, nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(q audio.Quantized) ([]byte, Container, error) {
	buf := &seekBuffer{}
	c, err := Encode(buf, q)
	if err != nil {
		return nil, Container{}, err
	}

	return buf.Bytes(), c, nil
}
