// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmlab/audio"
)

// createWAVFile builds a canonical 44-byte header WAV around raw PCM data.
func createWAVFile(audioFormat, sampleRate, channels, bitsPerSample int, pcm []byte) []byte {
	buf := new(bytes.Buffer)
	blockAlign := channels * bitsPerSample / 8

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(audioFormat))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

func int16PCM(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func TestDecoder_16BitStereo(t *testing.T) {
	t.Parallel()

	data := createWAVFile(formatPCM, 44100, 2, 16, int16PCM(16384, -16384, 32767, -32768))

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	buf, err := audio.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.5, 32767.0 / 32768, -1}, buf.Samples)
}

func TestDecoder_8BitUnsigned(t *testing.T) {
	t.Parallel()

	data := createWAVFile(formatPCM, 8000, 1, 8, []byte{128, 0, 192, 64})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	buf, err := audio.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -1, 0.5, -0.5}, buf.Samples)
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createWAVFile(formatPCM, 16000, 1, 16, int16PCM(0, 8192))

	// io.MultiReader hides the Seek method of bytes.Reader
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	require.NoError(t, err)

	buf, err := audio.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25}, buf.Samples)
}

func TestDecoder_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("This is definitely not a WAV file at all, no.")},
		{"float samples", createWAVFile(3, 8000, 1, 32, make([]byte, 8))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, audio.ErrDecode)
		})
	}
}

func TestWavSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &wavSource{data: []int{0, 16384, -16384}, sampleRate: 8000, channels: 1, scale: 32768}

	dst := make([]float64, 2)
	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{0, 0.5}, dst)

	n, err = src.ReadSamples(dst)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, -0.5, dst[0])

	n, err = src.ReadSamples(dst)
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, n)
}
