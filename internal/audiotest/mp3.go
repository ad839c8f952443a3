// SPDX-License-Identifier: EPL-2.0

package audiotest

const (
	// MP3SampleRate and MP3FrameSamples describe the stream SilentMP3 builds.
	MP3SampleRate   = 44100
	MP3FrameSamples = 1152

	// 144 * 128000 / 44100, no padding
	mp3FrameBytes = 417
)

// mp3Header is an MPEG-1 Layer III frame header: no CRC, 128 kbit/s,
// 44.1 kHz, no padding, stereo.
var mp3Header = [4]byte{0xFF, 0xFB, 0x90, 0x00}

// SilentMP3 returns a valid MP3 stream of frames frames of digital silence.
// All side information is zero, so every granule carries no Huffman data and
// decodes to exact zeros.
func SilentMP3(frames int) []byte {
	out := make([]byte, frames*mp3FrameBytes)
	for f := range frames {
		copy(out[f*mp3FrameBytes:], mp3Header[:])
	}
	return out
}
