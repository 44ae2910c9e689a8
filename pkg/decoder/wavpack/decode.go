package wavpack

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aulos-player/aulos/pkg/decoder"
	"github.com/aulos-player/aulos/pkg/input"
	"github.com/aulos-player/aulos/pkg/pcm"
	"github.com/aulos-player/aulos/pkg/tags"
)

// pluginName is a constant so the entry points can mention it
// without referring back to Plugin, which would cycle the package
// initialization.
const pluginName = "wavpack"

// Plugin is the WavPack decoder's descriptor.
var Plugin = &decoder.Plugin{
	Name:         pluginName,
	StreamDecode: streamDecode,
	FileDecode:   fileDecode,
	ScanFile:     scanFile,
	Suffixes:     []string{"wv"},
	MimeTypes:    []string{"audio/x-wavpack"},
}

func init() {
	decoder.Register(Plugin)
}

func sessionLogger() *slog.Logger {
	return slog.Default().With(
		"decoder", pluginName,
		"session", uuid.NewString(),
	)
}

// bitsToSampleFormat maps the sample shape the library reported onto
// a host sample format.
func bitsToSampleFormat(isFloat, isDSD bool, bytesPerSample int) pcm.SampleFormat {
	if isFloat {
		return pcm.SampleFormatFloat
	}
	if isDSD {
		return pcm.SampleFormatDSD
	}

	switch bytesPerSample {
	case 1:
		return pcm.SampleFormatS8
	case 2:
		return pcm.SampleFormatS16
	case 3:
		return pcm.SampleFormatS24P32
	case 4:
		return pcm.SampleFormatS32
	default:
		return pcm.SampleFormatUndefined
	}
}

// durationOf converts the codec's total frame count to playing time.
// Negative means unknown.
func durationOf(codec Codec) time.Duration {
	frames := codec.NumSamples()
	rate := codec.SampleRate()
	if frames < 0 || rate <= 0 {
		return -1
	}

	secs := frames / int64(rate)
	rem := frames % int64(rate)
	return time.Duration(secs)*time.Second +
		time.Duration(rem)*time.Second/time.Duration(rate)
}

// The library unpacks every sample width into a 32-bit slot, so one
// fixed chunk covers 1024 samples across all channels.
const chunkSamples = 1024

// decode runs the sample loop over an opened codec handle. The caller
// owns the handle and closes it.
func decode(client decoder.Client, codec Codec, canSeek bool) error {
	mode := codec.Mode()
	sampleFormat := bitsToSampleFormat(mode&ModeFloat != 0, mode&ModeDSD != 0,
		codec.BytesPerSample())
	if sampleFormat == pcm.SampleFormatUndefined {
		return fmt.Errorf("wavpack: %d bytes per sample: %w",
			codec.BytesPerSample(), pcm.ErrUnsupported)
	}

	format, err := pcm.CheckFormat(codec.SampleRate(), sampleFormat,
		codec.ReducedChannels())
	if err != nil {
		return fmt.Errorf("wavpack: %w", err)
	}

	client.Ready(format, canSeek, durationOf(codec))

	var chunk [chunkSamples]int32
	out := make([]byte, 0, chunkSamples*4)
	samplesRequested := uint32(chunkSamples / format.Channels)

	cmd := client.GetCommand()
	for cmd != decoder.CmdStop {
		if cmd == decoder.CmdSeek {
			if canSeek && codec.SeekSample(client.SeekFrame()) {
				client.CommandFinished()
			} else {
				client.SeekError()
			}
		}

		got := codec.UnpackSamples(chunk[:], samplesRequested)
		if got == 0 {
			break
		}

		kbps := int(codec.InstantBitrate()/1000 + 0.5)
		out, err = pcm.EncodeInt32(format.Format, chunk[:int(got)*format.Channels], out)
		if err != nil {
			return fmt.Errorf("wavpack: %w", err)
		}
		cmd = client.SubmitData(nil, out, kbps)
	}

	return nil
}

// streamDecode decodes from the host's input stream, attaching the
// correction stream when the host can provide one.
func streamDecode(client decoder.Client, src input.Stream) error {
	lib := library
	if lib == nil {
		return ErrNoLibrary
	}
	logger := sessionLogger()

	flags := OpenDSDNative | OpenNormalize
	canSeek := src.IsSeekable()

	// The correction stream carries the lossy/lossless residue; it
	// lives next to the primary URI with a "c" appended. Either
	// both streams seek or neither does.
	var companion StreamReader
	if wvc := openCompanion(client, src.URI()); wvc != nil {
		defer wvc.Close()
		flags |= OpenWVC
		canSeek = canSeek && wvc.IsSeekable()
		companion = newStreamInput(client, wvc)
		logger.Debug("correction stream attached", "uri", wvc.URI())
	} else {
		logger.Debug("no correction stream")
	}
	if !canSeek {
		flags |= OpenStreaming
	}

	codec, err := lib.OpenStream(newStreamInput(client, src), companion, flags, 0)
	if err != nil {
		return fmt.Errorf("failed to open WavPack stream: %w", err)
	}
	defer codec.Close()

	logger.Debug("stream opened", "uri", src.URI(), "seekable", canSeek)
	return decode(client, codec, canSeek)
}

// openCompanion tries the correction stream next to uri. Failure is
// normal: most streams carry no correction data.
func openCompanion(client decoder.Client, uri string) input.Stream {
	if uri == "" {
		return nil
	}
	wvc, err := client.OpenURI(uri + "c")
	if err != nil {
		return nil
	}
	return wvc
}

// fileDecode opens path directly; the library performs its own file
// access and picks up the companion file when one is present.
func fileDecode(client decoder.Client, path string) error {
	lib := library
	if lib == nil {
		return ErrNoLibrary
	}
	logger := sessionLogger()

	codec, err := lib.OpenFile(path, OpenDSDNative|OpenNormalize|OpenWVC, 0)
	if err != nil {
		return fmt.Errorf("failed to open WavPack file %q: %w", path, err)
	}
	defer codec.Close()

	logger.Debug("file opened", "path", path)
	return decode(client, codec, true)
}

// scanFile reports the duration without decoding any samples.
func scanFile(path string, h tags.Handler) error {
	lib := library
	if lib == nil {
		return ErrNoLibrary
	}

	codec, err := lib.OpenFile(path, OpenDSDNative, 0)
	if err != nil {
		return fmt.Errorf("failed to open WavPack file %q: %w", path, err)
	}
	defer codec.Close()

	if d := durationOf(codec); d >= 0 {
		h.OnDuration(d)
	}
	return nil
}
