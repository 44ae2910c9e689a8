package pcm

import (
	"encoding/binary"
	"fmt"
)

// EncodeInt32 serializes samples from the 32-bit unpacking space into
// little-endian bytes of the given format, reusing dst when it has the
// capacity. Integer formats narrower than 32 bits take the low bytes of
// each sample; SampleFormatFloat passes the 32-bit pattern through
// untouched.
func EncodeInt32(format SampleFormat, samples []int32, dst []byte) ([]byte, error) {
	size := format.SampleSize()
	if size == 0 {
		return nil, fmt.Errorf("%w: cannot encode undefined sample format", ErrUnsupported)
	}

	need := len(samples) * size
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]

	switch size {
	case 1:
		for i, s := range samples {
			dst[i] = byte(s)
		}
	case 2:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(s))
		}
	case 4:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(s))
		}
	}
	return dst, nil
}

// DecodeInt32 is the inverse of EncodeInt32: it widens little-endian
// sample bytes back into the 32-bit space. Narrow integer formats are
// sign-extended; DSD bytes are not, since they are bit patterns rather
// than amplitudes. Trailing bytes short of a full sample are ignored.
func DecodeInt32(format SampleFormat, data []byte, dst []int32) ([]int32, error) {
	size := format.SampleSize()
	if size == 0 {
		return nil, fmt.Errorf("%w: cannot decode undefined sample format", ErrUnsupported)
	}

	n := len(data) / size
	if cap(dst) < n {
		dst = make([]int32, n)
	}
	dst = dst[:n]

	switch format {
	case SampleFormatDSD:
		for i := range dst {
			dst[i] = int32(data[i])
		}
	case SampleFormatS8:
		for i := range dst {
			dst[i] = int32(int8(data[i]))
		}
	case SampleFormatS16:
		for i := range dst {
			dst[i] = int32(int16(binary.LittleEndian.Uint16(data[2*i:])))
		}
	default:
		for i := range dst {
			dst[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
		}
	}
	return dst, nil
}
