// SPDX-License-Identifier: EPL-2.0

// Package pcmlab shows what sampling rate and bit depth do to a recording.
//
// A Pipeline takes an encoded file, folds it to mono, resamples it to a
// target rate, quantizes it to a target bit depth and packages the result as
// a playable WAV file together with the numbers needed to plot and compare
// both signals.
//
// # Quick Start
//
//	data, _ := os.ReadFile("song.mp3")
//
//	p := pcmlab.NewPipeline(pcmlab.WithLogger(logger))
//	res, err := p.Process(data, "mp3", pcmlab.Params{SampleRate: 8000, BitDepth: 8})
//	if err != nil {
//	    return err
//	}
//
//	os.WriteFile("song.wav", res.WAV, 0o644)
//	fmt.Println(res.OriginalEstimatedSize, "->", res.EstimatedSize, "bytes")
//
// # Stages
//
// Each stage is also available on its own:
//
//	buf, _ := p.Decode(data, "mp3")    // mono, normalized to [-1, 1]
//	low, _ := p.Resample(buf, 8000)    // band limited to 4 kHz
//	q, _ := p.Quantize(low, 8)         // 127 positive levels
//	file, c, _ := p.EncodeWAV(q)       // c is unsigned 8-bit PCM
//
// # WAV Containers
//
// WAV can only store a few sample layouts. 8, 16 and 24 bits map to a
// container of their own; every other depth is stored as signed 16-bit PCM
// and Result.Fallback is set. The samples of such a file still only take the
// values of the requested depth.
//
// # Size Estimates
//
// Result.EstimatedSize is rate * bits * channels * seconds / 8 for one
// channel at the requested depth. It describes uncompressed audio for
// teaching purposes and is not the size of Result.WAV.
//
// # Errors
//
// Unreadable input fails with ErrDecode, a non-positive rate or a bit depth
// below 2 with ErrInvalidParameter. No partial Result is returned.
package pcmlab
