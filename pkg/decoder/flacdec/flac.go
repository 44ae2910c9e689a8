// Package flacdec decodes FLAC streams with github.com/mewkiz/flac,
// interleaving the per-channel subframes into the host's packed
// sample layout.
package flacdec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/aulos-player/aulos/pkg/decoder"
	"github.com/aulos-player/aulos/pkg/input"
	"github.com/aulos-player/aulos/pkg/pcm"
)

// pluginName is a constant so streamDecode can mention it without
// referring back to Plugin, which would cycle the package
// initialization.
const pluginName = "flac"

// Plugin is the FLAC decoder's descriptor.
var Plugin = &decoder.Plugin{
	Name:         pluginName,
	StreamDecode: streamDecode,
	ScanFile:     scanFile,
	Suffixes:     []string{"flac"},
	MimeTypes:    []string{"audio/flac", "audio/x-flac", "application/x-flac"},
}

func init() {
	decoder.Register(Plugin)
}

// sourceReader exposes the borrowed stream as a plain io.Reader so
// the library cannot close it.
type sourceReader struct {
	src input.Stream
}

func (r sourceReader) Read(p []byte) (int, error) { return r.src.Read(p) }

func flacSampleFormat(bits uint8) pcm.SampleFormat {
	switch bits {
	case 8:
		return pcm.SampleFormatS8
	case 16:
		return pcm.SampleFormatS16
	case 24:
		return pcm.SampleFormatS24P32
	case 32:
		return pcm.SampleFormatS32
	default:
		return pcm.SampleFormatUndefined
	}
}

// streamDuration derives the playing time from the stream info block.
// Negative means unknown: a zero sample count is how FLAC encodes
// "not stated".
func streamDuration(info *meta.StreamInfo) time.Duration {
	if info.NSamples == 0 || info.SampleRate == 0 {
		return -1
	}
	frames := int64(info.NSamples)
	rate := int64(info.SampleRate)
	return time.Duration(frames/rate)*time.Second +
		time.Duration(frames%rate)*time.Second/time.Duration(rate)
}

// averageKbps estimates the bit rate from the compressed size and the
// playing time; 0 when either is unknown.
func averageKbps(src input.Stream, dur time.Duration) int {
	if !src.KnownSize() || dur <= 0 {
		return 0
	}
	ms := dur.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int(src.Size() * 8 / ms)
}

// interleave packs the frame's per-channel subframes into dst in
// channel order, reusing dst's backing array when it is big enough.
func interleave(f *frame.Frame, dst []int32) ([]int32, error) {
	blockSize := int(f.BlockSize)
	for _, sub := range f.Subframes {
		if len(sub.Samples) < blockSize {
			return dst, fmt.Errorf("flac: subframe carries %d of %d samples",
				len(sub.Samples), blockSize)
		}
	}

	nch := len(f.Subframes)
	need := blockSize * nch
	if cap(dst) < need {
		dst = make([]int32, need)
	} else {
		dst = dst[:need]
	}

	for i := 0; i < blockSize; i++ {
		for ch, sub := range f.Subframes {
			dst[i*nch+ch] = sub.Samples[i]
		}
	}
	return dst, nil
}

func seekTo(stream *flac.Stream, frame int64) bool {
	if frame < 0 {
		return false
	}
	_, err := stream.Seek(uint64(frame))
	return err == nil
}

func streamDecode(client decoder.Client, src input.Stream) error {
	logger := slog.Default().With("decoder", pluginName)

	var (
		stream  *flac.Stream
		err     error
		canSeek bool
	)
	if rs, ok := input.AsReadSeeker(src); ok {
		stream, err = flac.NewSeek(rs)
		canSeek = true
	} else {
		stream, err = flac.New(sourceReader{src: src})
	}
	if err != nil {
		return fmt.Errorf("failed to open FLAC stream: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	format, err := pcm.CheckFormat(int(info.SampleRate),
		flacSampleFormat(info.BitsPerSample), int(info.NChannels))
	if err != nil {
		return fmt.Errorf("flac: %w", err)
	}

	dur := streamDuration(info)
	client.Ready(format, canSeek, dur)
	kbps := averageKbps(src, dur)

	var (
		samples []int32
		out     []byte
	)
	cmd := client.GetCommand()
	for cmd != decoder.CmdStop {
		if cmd == decoder.CmdSeek {
			if canSeek && seekTo(stream, client.SeekFrame()) {
				client.CommandFinished()
			} else {
				client.SeekError()
			}
		}

		f, err := stream.ParseNext()
		if err != nil {
			// Truncated data ends the stream, it does not fail
			// the session.
			if !errors.Is(err, io.EOF) {
				logger.Warn("decoding aborted mid-stream",
					"uri", src.URI(), "error", err)
			}
			break
		}

		samples, err = interleave(f, samples)
		if err != nil {
			return err
		}
		out, err = pcm.EncodeInt32(format.Format, samples, out)
		if err != nil {
			return fmt.Errorf("flac: %w", err)
		}
		cmd = client.SubmitData(src, out, kbps)
	}

	return nil
}
