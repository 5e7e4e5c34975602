package codec

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Payload is a hidden file: its extension without the leading dot and its
// raw bytes.
type Payload struct {
	Extension string
	Data      []byte
}

// Size returns the payload length as stored in the size field.
func (p *Payload) Size() uint32 {
	return uint32(len(p.Data))
}

// payloadEnd returns the offset one past the last payload bit. It is computed
// in 64 bits so that a hostile size field cannot overflow int.
func payloadEnd(l Layout, size uint64) uint64 {
	return uint64(l.PrefixLength()) + size*8
}

// EncodePayload writes data into the carrier LSBs following the prefix, each
// byte from bit 7 down to bit 0.
func EncodePayload(buf []byte, l Layout, data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return errors.Wrapf(ErrInsufficientCapacity, "payload of %d bytes exceeds the size field", len(data))
	}
	if end := payloadEnd(l, uint64(len(data))); uint64(len(buf)) < end {
		return errors.Wrapf(ErrBufferTooShort, "payload needs %d bytes, carrier has %d", end, len(buf))
	}

	pos := l.PrefixLength()
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			buf[pos] = SetLSB(buf[pos], b>>bit)
			pos++
		}
	}
	return nil
}

// DecodePayload reads size bytes from the carrier LSBs following the prefix.
func DecodePayload(buf []byte, l Layout, size uint32) ([]byte, error) {
	if end := payloadEnd(l, uint64(size)); uint64(len(buf)) < end {
		return nil, errors.Wrapf(ErrBufferTooShort, "payload of %d bytes needs %d carrier bytes, carrier has %d", size, end, len(buf))
	}

	out := make([]byte, size)
	pos := l.PrefixLength()
	for k := range out {
		var b byte
		for i := 0; i < 8; i++ {
			b = b<<1 | LSB(buf[pos])
			pos++
		}
		out[k] = b
	}
	return out, nil
}
