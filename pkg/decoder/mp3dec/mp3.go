// Package mp3dec decodes MPEG audio with hajimehoshi/go-mp3, which
// delivers 16-bit stereo PCM regardless of the source layout.
package mp3dec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/aulos-player/aulos/pkg/decoder"
	"github.com/aulos-player/aulos/pkg/input"
	"github.com/aulos-player/aulos/pkg/pcm"
	"github.com/aulos-player/aulos/pkg/tags"
)

// One decoded frame is one 16-bit sample for each of two channels.
const frameBytes = 4

// pluginName is a constant so streamDecode can mention it without
// referring back to Plugin, which would cycle the package
// initialization.
const pluginName = "mp3"

// Plugin is the MPEG audio decoder's descriptor.
var Plugin = &decoder.Plugin{
	Name:         pluginName,
	StreamDecode: streamDecode,
	ScanFile:     scanFile,
	Suffixes:     []string{"mp3"},
	MimeTypes:    []string{"audio/mpeg"},
}

func init() {
	decoder.Register(Plugin)
}

// sourceReader exposes the borrowed stream as a plain io.Reader so
// the library neither closes nor seeks it.
type sourceReader struct {
	src input.Stream
}

func (r sourceReader) Read(p []byte) (int, error) { return r.src.Read(p) }

// pcmDuration converts a decoded byte count to playing time.
// Negative means unknown.
func pcmDuration(length int64, rate int) time.Duration {
	if length < 0 || rate <= 0 {
		return -1
	}
	frames := length / frameBytes
	return time.Duration(frames/int64(rate))*time.Second +
		time.Duration(frames%int64(rate))*time.Second/time.Duration(rate)
}

func decodedDuration(d *mp3.Decoder) time.Duration {
	return pcmDuration(d.Length(), d.SampleRate())
}

// seekTo repositions the decoder in its decoded-byte space.
func seekTo(d *mp3.Decoder, frame int64) bool {
	if frame < 0 {
		return false
	}
	_, err := d.Seek(frame*frameBytes, io.SeekStart)
	return err == nil
}

func streamDecode(client decoder.Client, src input.Stream) error {
	logger := slog.Default().With("decoder", pluginName)

	var (
		r       io.Reader
		canSeek bool
	)
	if rs, ok := input.AsReadSeeker(src); ok {
		r = rs
		canSeek = true
	} else {
		r = sourceReader{src: src}
	}

	d, err := mp3.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("failed to open MPEG stream: %w", err)
	}

	format, err := pcm.CheckFormat(d.SampleRate(), pcm.SampleFormatS16, 2)
	if err != nil {
		return fmt.Errorf("mp3: %w", err)
	}

	dur := decodedDuration(d)
	client.Ready(format, canSeek, dur)

	var kbps int
	if ms := dur.Milliseconds(); src.KnownSize() && ms > 0 {
		kbps = int(src.Size() * 8 / ms)
	}

	buf := make([]byte, 8192)
	cmd := client.GetCommand()
	for cmd != decoder.CmdStop {
		if cmd == decoder.CmdSeek {
			if canSeek && seekTo(d, client.SeekFrame()) {
				client.CommandFinished()
			} else {
				client.SeekError()
			}
		}

		n, err := d.Read(buf)
		if n == 0 {
			if err != nil && !errors.Is(err, io.EOF) {
				logger.Warn("decoding aborted mid-stream",
					"uri", src.URI(), "error", err)
			}
			break
		}
		cmd = client.SubmitData(src, buf[:n], kbps)
	}

	return nil
}

func scanFile(path string, h tags.Handler) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("not an MPEG stream: %w", err)
	}
	if dur := decodedDuration(d); dur >= 0 {
		h.OnDuration(dur)
	}

	// ID3 tags live outside the MPEG frames; the tag prober handles
	// them with its own file handle.
	if _, err := tags.ProbeFile(path, h); err != nil {
		return err
	}
	return nil
}
