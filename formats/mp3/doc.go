// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into an audio.Source.
//
// Decoding is done in memory by github.com/hajimehoshi/go-mp3, which always
// yields signed 16-bit stereo PCM at the stream's own sample rate. Samples
// are normalized by the fixed 16-bit full scale (32768), so the same input
// always produces the same float64 values in [-1, 1]:
//
//	src, err := mp3.Decoder{}.Decode(bytes.NewReader(data))
//	if errors.Is(err, audio.ErrDecode) {
//	    // not an MP3 stream
//	}
//	buf, err := audio.ReadAll(src)
//
// Mono sources are reported as stereo with both channels equal; use
// audio.Downmix or audio.NewMonoMixer to fold them.
//
// Any error coming from the underlying decoder, either while reading the
// header or in the middle of the stream, wraps audio.ErrDecode.
package mp3
