package codec

// HasCapacity reports whether a carrier of carrierLen bytes can host a
// payload of payloadLen bytes. The spare carrier bytes after the prefix, one
// payload bit each, must strictly exceed the payload size:
//
//	(carrierLen - prefix) * 0.125 > payloadLen
//
// The comparison is done in integers, multiplied through by 8.
func HasCapacity(carrierLen, payloadLen int, l Layout) bool {
	if payloadLen < 0 {
		return false
	}
	spare := int64(carrierLen) - int64(l.PrefixLength())
	return spare > int64(payloadLen)*8
}

// Capacity returns the largest payload, in bytes, that HasCapacity accepts
// for a carrier of carrierLen bytes, or -1 when not even an empty payload fits.
func Capacity(carrierLen int, l Layout) int {
	spare := int64(carrierLen) - int64(l.PrefixLength())
	if spare <= 0 {
		return -1
	}
	return int((spare - 1) / 8)
}
