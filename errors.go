// SPDX-License-Identifier: EPL-2.0

package pcmlab

import "github.com/ik5/pcmlab/audio"

// Errors returned by Pipeline, matched with errors.Is.
var (
	// ErrDecode is returned for input that is not a decodable audio stream.
	ErrDecode = audio.ErrDecode
	// ErrInvalidParameter is returned for a non-positive sample rate or a bit
	// depth outside [audio.MinBitDepth, audio.MaxBitDepth].
	ErrInvalidParameter = audio.ErrInvalidParameter
)
