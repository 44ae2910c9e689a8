package input

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient issues the requests behind OpenHTTP. The transport bounds
// the wait for response headers only; body reads may run as long as
// the stream lives.
var HTTPClient = &http.Client{
	Transport: &http.Transport{ResponseHeaderTimeout: 30 * time.Second},
}

// SetHeaderTimeout adjusts how long OpenHTTP waits for response
// headers before giving up.
func SetHeaderTimeout(d time.Duration) {
	HTTPClient.Transport = &http.Transport{ResponseHeaderTimeout: d}
}

type httpStream struct {
	uri    string
	body   io.ReadCloser
	size   int64
	offset int64
}

var _ Stream = (*httpStream)(nil)

// OpenHTTP fetches uri with a GET request and serves the response body
// as a sequential Stream. The size is known only when the server sent
// a Content-Length; HTTP streams are never seekable.
func OpenHTTP(ctx context.Context, uri string) (Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", uri, err)
	}
	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", uri, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %q: %s", uri, resp.Status)
	}
	return &httpStream{uri: uri, body: resp.Body, size: resp.ContentLength}, nil
}

func (s *httpStream) URI() string { return s.uri }

func (s *httpStream) Read(p []byte) (int, error) {
	n, err := s.body.Read(p)
	s.offset += int64(n)
	return n, err
}

func (s *httpStream) Seek(int64) error { return ErrNotSeekable }

func (s *httpStream) Offset() int64    { return s.offset }
func (s *httpStream) Size() int64      { return s.size }
func (s *httpStream) KnownSize() bool  { return s.size >= 0 }
func (s *httpStream) IsSeekable() bool { return false }
func (s *httpStream) Close() error     { return s.body.Close() }
