// Package wavpack decodes the WavPack container/codec by driving an
// external decompression library through its pull-based reader
// callbacks. The library is a collaborator behind the Library
// interface; this package owns the byte-source adapter the library
// reads through, the session driver, and the plugin entry points.
package wavpack

import "errors"

// EOF is the sentinel the reader callbacks use in place of an error
// value: the decoding library's calling convention has no error
// channel, only integer returns.
const EOF = -1

// StreamReader is the callback surface the decoding library drives to
// pull compressed bytes. Implementations must never panic or return
// errors across it; failures become sentinel returns.
type StreamReader interface {
	// ReadBytes fills p completely unless the source runs out or
	// the session stops. The library reads a short count as end of
	// stream.
	ReadBytes(p []byte) int32

	// GetPos returns the current byte offset.
	GetPos() int64

	// SetPosAbs seeks to an absolute offset, reporting success.
	// The position is unchanged after a failure.
	SetPosAbs(pos int64) bool

	// SetPosRel seeks relative to io.SeekStart, io.SeekCurrent or
	// io.SeekEnd. Seeking from the end of an unsized source fails.
	SetPosRel(delta int64, whence int) bool

	// PushBackByte unreads one byte, returning it. It returns EOF
	// when the single pushback slot is already occupied.
	PushBackByte(c int) int

	// GetLength returns the total size, or 0 when unknown.
	GetLength() int64

	// CanSeek reports whether the source supports seeking right now.
	CanSeek() bool
}

// OpenFlags select optional behavior of the decoding library.
type OpenFlags uint32

const (
	// OpenWVC makes the library consume a correction stream
	// alongside the primary one.
	OpenWVC OpenFlags = 1 << iota

	// OpenNormalize requests normalized floating-point output.
	OpenNormalize

	// OpenStreaming tells the library its source cannot seek.
	OpenStreaming

	// OpenDSDNative delivers DSD material as native 1-bit data.
	OpenDSDNative
)

// Mode bits describe an opened stream.
type Mode uint32

const (
	ModeFloat Mode = 1 << iota
	ModeDSD
)

// Codec is one opened decoding-library handle. It is bound to the
// session that opened it and must be closed on every exit path.
type Codec interface {
	SampleRate() int

	// ReducedChannels is the channel count with unused channels
	// folded away.
	ReducedChannels() int

	BytesPerSample() int

	Mode() Mode

	// NumSamples returns the total frame count, or -1 when unknown.
	NumSamples() int64

	// InstantBitrate estimates the bit rate around the current
	// decode position, in bits per second.
	InstantBitrate() float64

	// UnpackSamples decodes up to count frames into dst, one int32
	// slot per sample regardless of width, and returns the frames
	// actually delivered. Zero means end of stream.
	UnpackSamples(dst []int32, count uint32) uint32

	// SeekSample repositions decoding at the given frame.
	SeekSample(frame int64) bool

	Close() error
}

// Library is the external decompression library's own surface.
type Library interface {
	// OpenFile opens path directly; the library performs its own
	// file access, including the companion file when OpenWVC is set.
	OpenFile(path string, flags OpenFlags, normOffset int) (Codec, error)

	// OpenStream opens a stream through reader callbacks. companion
	// may be nil.
	OpenStream(primary, companion StreamReader, flags OpenFlags, normOffset int) (Codec, error)
}

// ErrNoLibrary is returned by the decode and scan entry points until
// a binding is installed.
var ErrNoLibrary = errors.New("wavpack: no decoding library installed")

// The binding is process-wide configuration: install it once at
// startup, before any decode session starts. Per-session state lives
// in the handles, never here.
var library Library

// SetLibrary installs the decoding-library binding.
func SetLibrary(lib Library) {
	library = lib
}
