// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrDecode            = errors.New("unable to decode audio stream")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInvalidBuffer     = errors.New("invalid audio buffer")
)
