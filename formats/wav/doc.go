// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// It uses the github.com/go-audio library for the RIFF layout and keeps the
// whole file in memory, so nothing touches the filesystem.
//
// # Writing
//
// Encode stores an audio.Quantized buffer. The WAV container can only hold a
// few sample layouts, so the requested quantization depth is mapped through
// an explicit table:
//
//	8  -> unsigned 8-bit PCM
//	16 -> signed 16-bit PCM
//	24 -> signed 24-bit PCM
//	*  -> DefaultContainer (signed 16-bit PCM)
//
// ContainerFor reports whether the default was used. The header always
// describes the container, not the logical quantization depth:
//
//	q, _ := audio.Quantize(buf, 12)
//	data, c, err := wav.EncodeBytes(q) // c.BitDepth == 16
//
// # Reading
//
// Decoder accepts 8, 16, 24 and 32-bit PCM and returns an audio.Source with
// samples divided by the full scale of the stored depth. Errors wrap
// audio.ErrDecode.
package wav
