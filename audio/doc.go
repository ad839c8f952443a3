// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks of pcmlab.
//
// Samples are float64 values in [-1.0, 1.0], interleaved when a signal has
// more than one channel. Two shapes of signal exist:
//   - Source streams samples and is what format decoders return
//   - Buffer holds a fully decoded signal in memory
//
// ReadAll drains a Source into a Buffer and NewBufferSource streams a Buffer
// back out, so streaming stages such as MonoMixer and Resampler can be reused
// on whole buffers.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float64) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float64 values written, not frames, and
// io.EOF once the stream is finished:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Processing
//
//	mono, _ := audio.Downmix(buf)                          // mean of all channels
//	norm, _ := audio.Normalize(mono, audio.NormalizeFixed) // clamp to [-1, 1]
//	low, _ := audio.Resample(norm, 8000, audio.MethodFFT)  // band limited
//	q, _ := audio.Quantize(low, 8)                         // 127 positive levels
//
// Resample defaults to a Fourier method that produces exactly
// round(frames * dst / src) frames. MethodCubic uses the streaming
// Catmull-Rom Resampler instead, which is cheaper but only approximately band
// limited.
//
// Quantize snaps every sample to k / (2^(bits-1) - 1) for an integer k, so the
// result still lives in [-1, 1] but only takes the values a real bits-bit
// converter could produce.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("mp3", mp3.Decoder{})
//	decoder, ok := registry.Get("MP3")
//
// # Errors
//
// Failures wrap one of the package sentinels and are matched with errors.Is:
// ErrDecode for unreadable input, ErrInvalidParameter for rates and bit depths
// out of range, ErrInvalidBuffer for malformed buffers.
package audio
