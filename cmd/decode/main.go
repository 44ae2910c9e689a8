// Command decode renders one audio file or URL to a WAV file using
// the registered decoder plugins.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
	"github.com/oov/audio/resampler"
	"github.com/spf13/viper"

	"github.com/aulos-player/aulos/internal/config"
	"github.com/aulos-player/aulos/internal/fsutil"
	"github.com/aulos-player/aulos/internal/logging"
	"github.com/aulos-player/aulos/pkg/decoder"
	_ "github.com/aulos-player/aulos/pkg/decoder/flacdec"
	_ "github.com/aulos-player/aulos/pkg/decoder/mp3dec"
	_ "github.com/aulos-player/aulos/pkg/decoder/wavpack"
	"github.com/aulos-player/aulos/pkg/input"
	"github.com/aulos-player/aulos/pkg/pcm"
)

func main() {
	configFilePath := flag.String("configFilePath", "", "Set the file path to the config file.")
	outputPath := flag.String("o", "out.wav", "Set the output WAV file path.")
	targetRate := flag.Int("rate", 0, "Resample the output to this rate. 0 keeps the source rate.")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: decode [flags] <uri>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := config.Load(*configFilePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logFilePointer, err := logging.Configure(viper.GetString("loglevel"), viper.GetString("logfile"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	input.SetHeaderTimeout(time.Duration(viper.GetInt("httptimeoutseconds")) * time.Second)

	// --------------------------------------------------------------------------------

	rate := *targetRate
	if rate == 0 {
		rate = viper.GetInt("outputsamplerate")
	}

	logger := slog.Default().With("run", uuid.New())

	code := 0
	if err := run(logger, flag.Arg(0), *outputPath, rate); err != nil {
		logger.Error("decode failed", "err", err)
		code = 1
	}
	if logFilePointer != nil {
		logFilePointer.Close()
	}
	os.Exit(code)
}

func run(logger *slog.Logger, uri, outputPath string, targetRate int) error {
	if strings.HasPrefix(uri, "~") {
		expanded, err := fsutil.ExpandUser(uri)
		if err != nil {
			return err
		}
		uri = expanded
	}

	plugin := decoder.ForPath(uri)
	if plugin == nil {
		return fmt.Errorf("no decoder plugin claims %q", uri)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("could not create output file %q: %w", outputPath, err)
	}

	sink, err := newWAVSink(logger, out,
		viper.GetInt("outputbitdepth"),
		targetRate,
		viper.GetInt("resamplequality"),
	)
	if err != nil {
		out.Close()
		os.Remove(outputPath)
		return err
	}

	start := time.Now()
	err = decodeURI(plugin, sink, uri)
	closeErr := sink.close()
	if err == nil {
		err = sink.err
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputPath)
		return err
	}

	logger.Info("decode finished",
		"uri", uri,
		"plugin", plugin.Name,
		"output", outputPath,
		"frames", sink.frames,
		"elapsed", time.Since(start),
	)
	return nil
}

// decodeURI picks the decode entry point: local files may use the
// plugin's direct file path, everything else streams.
func decodeURI(plugin *decoder.Plugin, sink *wavSink, uri string) error {
	if plugin.FileDecode != nil && !strings.Contains(uri, "://") {
		return plugin.FileDecode(sink, uri)
	}
	if plugin.StreamDecode == nil {
		return fmt.Errorf("plugin %q cannot decode streams", plugin.Name)
	}

	src, err := input.Open(uri)
	if err != nil {
		return err
	}
	defer src.Close()
	return plugin.StreamDecode(sink, src)
}

// --------------------------------------------------------------------------------
// wavSink

const (
	// To avoid reallocating for every submitted chunk, reuse buffers
	// with "enough size". 48000Hz stereo audio with a latency of
	// 120ms is 11520 samples, so 2**14 = 16384 covers any chunk a
	// plugin submits.
	bufferSize int = 16384
)

// stageFunc transforms one interleaved float32 chunk on its way to
// the encoder.
type stageFunc func(sourceFrame []float32) []float32

// wavSink is the decoder client collecting a session's output into a
// WAV file.
type wavSink struct {
	logger *slog.Logger

	out        *os.File
	enc        *wav.Encoder
	bitDepth   int
	targetRate int
	quality    int

	format pcm.Format
	stages []stageFunc
	err    error

	samples []int32
	floats  []float32
	ints    []int
	frames  int64
}

var _ decoder.Client = (*wavSink)(nil)

func newWAVSink(logger *slog.Logger, out *os.File, bitDepth, targetRate, quality int) (*wavSink, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported output bit depth %d", bitDepth)
	}

	return &wavSink{
		logger:     logger,
		out:        out,
		bitDepth:   bitDepth,
		targetRate: targetRate,
		quality:    quality,
	}, nil
}

func (s *wavSink) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *wavSink) close() error {
	if s.enc != nil {
		if err := s.enc.Close(); err != nil {
			return err
		}
	}
	s.out.Sync()
	return s.out.Close()
}

func (s *wavSink) Ready(format pcm.Format, seekable bool, duration time.Duration) {
	s.format = format

	if format.Format == pcm.SampleFormatDSD {
		s.fail(fmt.Errorf("DSD streams cannot be written as WAV: %w", pcm.ErrUnsupported))
		return
	}

	outRate := format.SampleRate
	if s.targetRate > 0 && s.targetRate != format.SampleRate {
		s.stages = append(s.stages,
			newResampleStage(format.Channels, format.SampleRate, s.targetRate, s.quality))
		outRate = s.targetRate
	}

	s.enc = wav.NewEncoder(s.out, outRate, s.bitDepth, format.Channels, 1)
	s.logger.Info("stream ready",
		"format", format.String(),
		"seekable", seekable,
		"duration", duration,
		"outputRate", outRate,
	)
}

func (s *wavSink) GetCommand() decoder.Command {
	if s.err != nil {
		return decoder.CmdStop
	}
	return decoder.CmdNone
}

func (s *wavSink) CommandFinished() {}

func (s *wavSink) SeekFrame() int64 { return 0 }

func (s *wavSink) SeekError() {}

func (s *wavSink) SubmitData(_ input.Stream, data []byte, kbps int) decoder.Command {
	if s.err != nil || s.enc == nil {
		return decoder.CmdStop
	}

	var err error
	s.samples, err = pcm.DecodeInt32(s.format.Format, data, s.samples)
	if err != nil {
		s.fail(err)
		return decoder.CmdStop
	}

	s.floats = widenToFloat(s.format.Format, s.samples, s.floats)
	pcmData := s.floats
	for _, stage := range s.stages {
		pcmData = stage(pcmData)
	}

	if err := s.writeFrames(pcmData); err != nil {
		s.fail(err)
		return decoder.CmdStop
	}
	return decoder.CmdNone
}

func (s *wavSink) OpenURI(uri string) (input.Stream, error) {
	return input.Open(uri)
}

func (s *wavSink) writeFrames(pcmData []float32) error {
	scale := float64(int64(1)<<(s.bitDepth-1) - 1)
	if cap(s.ints) < len(pcmData) {
		s.ints = make([]int, len(pcmData))
	}
	ints := s.ints[:len(pcmData)]
	for i, v := range pcmData {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		ints[i] = int(float64(v) * scale)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: s.format.Channels,
			SampleRate:  s.enc.SampleRate,
		},
		Data:           ints,
		SourceBitDepth: s.bitDepth,
	}
	if err := s.enc.Write(buf); err != nil {
		return fmt.Errorf("error while writing frame to file: %w", err)
	}
	s.frames += int64(len(pcmData) / s.format.Channels)
	return nil
}

// widenToFloat rescales decoded samples into [-1, 1] float32, the
// layout the resampler works in.
func widenToFloat(format pcm.SampleFormat, in []int32, dst []float32) []float32 {
	if cap(dst) < len(in) {
		dst = make([]float32, len(in))
	}
	dst = dst[:len(in)]

	switch format {
	case pcm.SampleFormatS8:
		for i, v := range in {
			dst[i] = float32(v) / float32(1<<7)
		}
	case pcm.SampleFormatS16:
		for i, v := range in {
			dst[i] = float32(v) / float32(1<<15)
		}
	case pcm.SampleFormatS24P32:
		for i, v := range in {
			dst[i] = float32(v) / float32(1<<23)
		}
	case pcm.SampleFormatS32:
		for i, v := range in {
			dst[i] = float32(float64(v) / float64(int64(1)<<31))
		}
	case pcm.SampleFormatFloat:
		for i, v := range in {
			dst[i] = math.Float32frombits(uint32(v))
		}
	}
	return dst
}

// newResampleStage converts between sample rates. The resampler wants
// planar channels, so each chunk is split, converted per channel and
// interleaved again.
func newResampleStage(channels, sourceRate, sinkRate, quality int) stageFunc {
	r := resampler.New(channels, sourceRate, sinkRate, quality)

	// Input slices are sized so their converted output can never
	// overflow the planar buffers, whatever the rate ratio.
	planarCap := bufferSize / 2
	inChunk := (planarCap - 16) * sourceRate / sinkRate
	if inChunk < 1 {
		inChunk = 1
	}
	if inChunk > planarCap {
		inChunk = planarCap
	}

	planarIn := make([][]float32, channels)
	planarOut := make([][]float32, channels)
	for ch := range planarIn {
		planarIn[ch] = make([]float32, planarCap)
		planarOut[ch] = make([]float32, planarCap)
	}
	var out []float32

	return func(sourceFrame []float32) []float32 {
		frames := len(sourceFrame) / channels
		out = out[:0]

		for start := 0; start < frames; {
			n := min(inChunk, frames-start)

			// Decode to planar, sourceFrame is interleaved.
			for i := 0; i < n; i++ {
				for ch := 0; ch < channels; ch++ {
					planarIn[ch][i] = sourceFrame[(start+i)*channels+ch]
				}
			}

			read, written := 0, 0
			for ch := 0; ch < channels; ch++ {
				read, written = r.ProcessFloat32(ch, planarIn[ch][:n], planarOut[ch])
			}

			// Interleave again.
			for i := 0; i < written; i++ {
				for ch := 0; ch < channels; ch++ {
					out = append(out, planarOut[ch][i])
				}
			}

			if read == 0 {
				break
			}
			start += read
		}
		return out
	}
}
