package input

import (
	"fmt"
	"io"
	"os"
)

type fileStream struct {
	uri    string
	f      *os.File
	size   int64
	offset int64
}

var _ Stream = (*fileStream)(nil)

// OpenFile opens a local file as a sized, seekable Stream.
func OpenFile(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return &fileStream{uri: path, f: f, size: info.Size()}, nil
}

func (s *fileStream) URI() string { return s.uri }

func (s *fileStream) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	s.offset += int64(n)
	return n, err
}

func (s *fileStream) Seek(offset int64) error {
	if _, err := s.f.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	s.offset = offset
	return nil
}

func (s *fileStream) Offset() int64    { return s.offset }
func (s *fileStream) Size() int64      { return s.size }
func (s *fileStream) KnownSize() bool  { return true }
func (s *fileStream) IsSeekable() bool { return true }
func (s *fileStream) Close() error     { return s.f.Close() }
