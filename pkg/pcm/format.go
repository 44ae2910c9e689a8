// Package pcm describes the normalized sample formats a decode session
// delivers to its host, built around the 32-bit sample space most
// decoding libraries unpack into.
package pcm

import (
	"errors"
	"fmt"
)

// SampleFormat identifies the width and interpretation of one sample.
type SampleFormat uint8

const (
	SampleFormatUndefined SampleFormat = iota

	SampleFormatS8
	SampleFormatS16

	// 24-bit audio padded into 32-bit words, the layout WavPack and
	// FLAC both deliver for 24-bit material.
	SampleFormatS24P32

	SampleFormatS32

	// 32-bit IEEE float.
	SampleFormatFloat

	// Direct Stream Digital, one byte carrying eight 1-bit samples.
	SampleFormatDSD
)

// SampleSize returns the storage size of one sample in bytes,
// or 0 for SampleFormatUndefined.
func (f SampleFormat) SampleSize() int {
	switch f {
	case SampleFormatS8, SampleFormatDSD:
		return 1
	case SampleFormatS16:
		return 2
	case SampleFormatS24P32, SampleFormatS32, SampleFormatFloat:
		return 4
	default:
		return 0
	}
}

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatS8:
		return "8"
	case SampleFormatS16:
		return "16"
	case SampleFormatS24P32:
		return "24"
	case SampleFormatS32:
		return "32"
	case SampleFormatFloat:
		return "f"
	case SampleFormatDSD:
		return "dsd"
	default:
		return "?"
	}
}

// Bounds accepted by CheckFormat.
const (
	MaxChannels   = 8
	MaxSampleRate = 768000
)

// Format is the shape of a PCM stream: rate, sample format, channel count.
type Format struct {
	SampleRate int
	Format     SampleFormat
	Channels   int
}

// FrameSize returns the size in bytes of one frame, i.e. one sample
// per channel.
func (f Format) FrameSize() int {
	return f.Format.SampleSize() * f.Channels
}

// String renders the format as "rate:format:channels", e.g. "44100:16:2".
func (f Format) String() string {
	return fmt.Sprintf("%d:%s:%d", f.SampleRate, f.Format, f.Channels)
}

// ErrUnsupported reports a sample shape the host cannot represent.
// It is distinct from open errors: the resource may well be a valid
// audio file.
var ErrUnsupported = errors.New("unsupported audio format")

// CheckFormat validates the shape a decoding library reported and
// returns it as a Format. Errors wrap ErrUnsupported.
func CheckFormat(sampleRate int, format SampleFormat, channels int) (Format, error) {
	if format == SampleFormatUndefined {
		return Format{}, fmt.Errorf("%w: undefined sample format", ErrUnsupported)
	}
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		return Format{}, fmt.Errorf("%w: invalid sample rate %d", ErrUnsupported, sampleRate)
	}
	if channels < 1 || channels > MaxChannels {
		return Format{}, fmt.Errorf("%w: invalid channel count %d", ErrUnsupported, channels)
	}
	return Format{SampleRate: sampleRate, Format: format, Channels: channels}, nil
}
