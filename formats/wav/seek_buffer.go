// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
)

// seekBuffer is an in-memory io.WriteSeeker. go-audio's encoder seeks back
// to patch chunk sizes once the data is written.
type seekBuffer struct {
	data   []byte
	offset int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	end := b.offset + int64(len(p))
	if end > int64(len(b.data)) {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, max(end, 2*int64(cap(b.data))))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}

	copy(b.data[b.offset:end], p)
	b.offset = end

	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.offset + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", ErrInvalidSeek, whence)
	}

	if next < 0 {
		return 0, fmt.Errorf("%w: negative position %d", ErrInvalidSeek, next)
	}

	b.offset = next
	return next, nil
}

// Bytes returns the written data.
func (b *seekBuffer) Bytes() []byte {
	return b.data
}
