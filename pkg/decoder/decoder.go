// Package decoder defines the contract between the host's decode
// sessions and the per-format decoder plugins: the client surface a
// session exposes, the plugin descriptor, and the process-wide
// plugin list.
package decoder

import (
	"strings"
	"time"

	"github.com/aulos-player/aulos/pkg/input"
	"github.com/aulos-player/aulos/pkg/pcm"
	"github.com/aulos-player/aulos/pkg/tags"
)

// Command is the host's pending instruction to a running decode.
type Command int

const (
	// CmdNone: keep decoding.
	CmdNone Command = iota

	// CmdStop: end the session as soon as possible.
	CmdStop

	// CmdSeek: reposition to the frame given by Client.SeekFrame.
	CmdSeek
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdStop:
		return "stop"
	case CmdSeek:
		return "seek"
	default:
		return "unknown"
	}
}

// Client is the host decode session as seen by a plugin. All calls
// happen on the plugin's goroutine.
type Client interface {
	// Ready announces the stream shape before the first submit.
	// A negative duration means unknown.
	Ready(format pcm.Format, seekable bool, duration time.Duration)

	// GetCommand returns the pending host command without blocking.
	GetCommand() Command

	// CommandFinished acknowledges a seek the plugin carried out.
	CommandFinished()

	// SeekFrame returns the target frame of a pending CmdSeek.
	SeekFrame() int64

	// SeekError rejects a pending CmdSeek.
	SeekError()

	// SubmitData hands decoded bytes to the host along with the
	// current bit rate estimate in kbit/s, and returns the next
	// pending command. src may be nil for plugins that drive their
	// own input. data is only valid for the duration of the call.
	SubmitData(src input.Stream, data []byte, kbps int) Command

	// OpenURI opens an auxiliary resource such as a correction
	// stream. An error means "not available" and is never fatal.
	OpenURI(uri string) (input.Stream, error)
}

// Plugin is one container/codec's entry points and claims.
type Plugin struct {
	Name string

	// StreamDecode decodes src to completion, submitting PCM to
	// client. Only open and format errors are returned; running
	// out of data mid-stream is a normal end.
	StreamDecode func(client Client, src input.Stream) error

	// FileDecode is the direct-path variant for plugins that want
	// the decoding library to handle file access itself.
	FileDecode func(client Client, path string) error

	// ScanFile reports duration and tags without decoding samples.
	ScanFile func(path string, h tags.Handler) error

	Suffixes  []string
	MimeTypes []string
}

// SupportsSuffix reports whether the plugin claims the dot-free
// filename suffix.
func (p *Plugin) SupportsSuffix(suffix string) bool {
	for _, s := range p.Suffixes {
		if strings.EqualFold(s, suffix) {
			return true
		}
	}
	return false
}

// SupportsMIME reports whether the plugin claims the MIME type.
func (p *Plugin) SupportsMIME(mime string) bool {
	for _, m := range p.MimeTypes {
		if strings.EqualFold(m, mime) {
			return true
		}
	}
	return false
}
