package input

import (
	"bytes"
	"io"
)

type memoryStream struct {
	uri    string
	r      *bytes.Reader
	size   int64
	offset int64
}

var _ Stream = (*memoryStream)(nil)

// NewMemory wraps data as a sized, seekable Stream. It backs fixtures
// and tests.
func NewMemory(uri string, data []byte) Stream {
	return &memoryStream{uri: uri, r: bytes.NewReader(data), size: int64(len(data))}
}

func (s *memoryStream) URI() string { return s.uri }

func (s *memoryStream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.offset += int64(n)
	return n, err
}

// Seek accepts any non-negative offset, like a file does; a position
// past the end reads as EOF. The offset is tracked here rather than
// derived from the reader, whose remaining length bottoms out at zero.
func (s *memoryStream) Seek(offset int64) error {
	if _, err := s.r.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	s.offset = offset
	return nil
}

func (s *memoryStream) Offset() int64    { return s.offset }
func (s *memoryStream) Size() int64      { return s.size }
func (s *memoryStream) KnownSize() bool  { return true }
func (s *memoryStream) IsSeekable() bool { return true }
func (s *memoryStream) Close() error     { return nil }

type readerStream struct {
	uri    string
	r      io.Reader
	offset int64
}

var _ Stream = (*readerStream)(nil)

// NewReader wraps a plain io.Reader as a sequential Stream with
// unknown size — the shape of a pipe or a live feed.
func NewReader(uri string, r io.Reader) Stream {
	return &readerStream{uri: uri, r: r}
}

func (s *readerStream) URI() string { return s.uri }

func (s *readerStream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.offset += int64(n)
	return n, err
}

func (s *readerStream) Seek(int64) error { return ErrNotSeekable }

func (s *readerStream) Offset() int64    { return s.offset }
func (s *readerStream) Size() int64      { return -1 }
func (s *readerStream) KnownSize() bool  { return false }
func (s *readerStream) IsSeekable() bool { return false }

func (s *readerStream) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
