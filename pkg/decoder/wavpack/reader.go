package wavpack

import (
	"io"

	"github.com/aulos-player/aulos/pkg/decoder"
	"github.com/aulos-player/aulos/pkg/input"
)

// streamInput adapts one input.Stream to the StreamReader callbacks.
// An instance serves a single stream of a single session; it borrows
// the stream and never closes it.
type streamInput struct {
	client decoder.Client
	src    input.Stream

	// lastByte is the single pushback slot, EOF when empty.
	lastByte int
}

var _ StreamReader = (*streamInput)(nil)

func newStreamInput(client decoder.Client, src input.Stream) *streamInput {
	return &streamInput{client: client, src: src, lastByte: EOF}
}

// ReadBytes drains the pushback slot and then fills p from the
// source. The library reads a short count as end of stream, so the
// fill loops until p is complete or the source has nothing left.
func (in *streamInput) ReadBytes(p []byte) int32 {
	var n int32

	if in.lastByte != EOF && len(p) > 0 {
		p[0] = byte(in.lastByte)
		in.lastByte = EOF
		p = p[1:]
		n++
	}

	for len(p) > 0 {
		nbytes := decoder.Read(in.client, in.src, p)
		if nbytes == 0 {
			// End of stream, a read error or a pending stop.
			break
		}
		n += int32(nbytes)
		p = p[nbytes:]
	}

	return n
}

func (in *streamInput) GetPos() int64 {
	return in.src.Offset()
}

func (in *streamInput) SetPosAbs(pos int64) bool {
	if err := in.src.Seek(pos); err != nil {
		return false
	}
	// A byte pushed back before the reposition belongs to the old
	// position.
	in.lastByte = EOF
	return true
}

func (in *streamInput) SetPosRel(delta int64, whence int) bool {
	offset := delta
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += in.src.Offset()
	case io.SeekEnd:
		if !in.src.KnownSize() {
			return false
		}
		offset += in.src.Size()
	default:
		return false
	}
	return in.SetPosAbs(offset)
}

func (in *streamInput) PushBackByte(c int) int {
	if in.lastByte != EOF {
		return EOF
	}
	in.lastByte = c
	return c
}

func (in *streamInput) GetLength() int64 {
	if !in.src.KnownSize() {
		return 0
	}
	return in.src.Size()
}

func (in *streamInput) CanSeek() bool {
	return in.src.IsSeekable()
}
