package codec

import "github.com/cockroachdb/errors"

// EncodeSize writes size into the LSBs of the size field, MSB first.
func EncodeSize(buf []byte, l Layout, size uint32) error {
	start := l.SizeFieldStart()
	if err := requireLen(buf, start+l.SizeFieldBits, "size field"); err != nil {
		return err
	}
	if l.SizeFieldBits < 32 && uint64(size) >= uint64(1)<<l.SizeFieldBits {
		return errors.Wrapf(ErrInsufficientCapacity, "size %d does not fit in %d bits", size, l.SizeFieldBits)
	}

	for i := 0; i < l.SizeFieldBits; i++ {
		bit := byte(size>>(l.SizeFieldBits-1-i)) & 0x01
		buf[start+i] = SetLSB(buf[start+i], bit)
	}
	return nil
}

// DecodeSize reads the payload length from the LSBs of the size field.
func DecodeSize(buf []byte, l Layout) (uint32, error) {
	start := l.SizeFieldStart()
	if err := requireLen(buf, start+l.SizeFieldBits, "size field"); err != nil {
		return 0, err
	}

	var size uint32
	for i := 0; i < l.SizeFieldBits; i++ {
		size |= uint32(LSB(buf[start+i])) << (l.SizeFieldBits - 1 - i)
	}
	return size, nil
}
