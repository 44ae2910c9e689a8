package input

import (
	"fmt"
	"io"
)

// AsReadSeeker adapts a seekable, sized Stream to the stdlib
// io.ReadSeeker shape some decoding libraries want. It reports false
// when the stream cannot honor the full Seek contract. The adapter
// deliberately hides the stream's Close method: libraries must not
// close a source they do not own.
func AsReadSeeker(s Stream) (io.ReadSeeker, bool) {
	if !s.IsSeekable() || !s.KnownSize() {
		return nil, false
	}
	return &readSeeker{s: s}, true
}

type readSeeker struct {
	s Stream
}

func (r *readSeeker) Read(p []byte) (int, error) { return r.s.Read(p) }

func (r *readSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.s.Offset()
	case io.SeekEnd:
		offset += r.s.Size()
	default:
		return 0, fmt.Errorf("unsupported whence %d", whence)
	}
	if err := r.s.Seek(offset); err != nil {
		return 0, err
	}
	return offset, nil
}
