// Package input provides the byte sources decode sessions read from:
// local files, in-memory buffers, and HTTP resources, behind one
// Stream interface with explicit size and seekability queries.
package input

import (
	"context"
	"errors"
	"strings"
)

// ErrNotSeekable is returned by Seek on sources without random access.
var ErrNotSeekable = errors.New("stream is not seekable")

// Stream is one open byte source. Implementations are not safe for
// concurrent use; one stream serves one decode session.
type Stream interface {
	// URI returns the identifier the stream was opened from.
	URI() string

	// Read blocks until at least one byte is available, returning
	// io.EOF once the source is exhausted.
	Read(p []byte) (int, error)

	// Seek repositions the stream to an absolute byte offset.
	Seek(offset int64) error

	// Offset returns the current read position.
	Offset() int64

	// Size returns the total size in bytes, or -1 when unknown.
	Size() int64

	// KnownSize reports whether Size is meaningful.
	KnownSize() bool

	// IsSeekable reports whether Seek can work at this moment.
	IsSeekable() bool

	Close() error
}

// Open dispatches on the URI scheme: http(s) URIs become HTTP streams,
// everything else is treated as a local file path.
func Open(uri string) (Stream, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return OpenHTTP(context.Background(), uri)
	case strings.HasPrefix(uri, "file://"):
		return OpenFile(strings.TrimPrefix(uri, "file://"))
	default:
		return OpenFile(uri)
	}
}
