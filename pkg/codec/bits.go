package codec

// LSB returns the least-significant bit of b.
func LSB(b byte) byte {
	return b & 0x01
}

// SetLSB returns b with bit 0 replaced by the low bit of bit. All other bits
// are preserved.
func SetLSB(b, bit byte) byte {
	return (b &^ 0x01) | (bit & 0x01)
}
