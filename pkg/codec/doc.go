// Package codec implements the LSB carrier format used by lsbmp.
//
// The codec hides a payload file inside an uncompressed bitmap by rewriting
// the least-significant bit of carrier bytes. Carrier bytes are treated as an
// opaque sequence: nothing past the fixed header skip is interpreted as pixel
// data, and only bit 0 of any carrier byte is ever changed.
//
// # Carrier Format
//
// One payload bit is stored per carrier byte. With the default layout the
// carrier is partitioned as follows:
//
//	[Header(54)][Size(32)][Extension(64)][Payload(8*Size)][Untouched...]
//
// Fields (lengths in carrier bytes, equivalently in hidden bits):
//   - Header: 54 bytes skipped without inspection (BITMAPFILEHEADER + BITMAPINFOHEADER)
//   - Size: payload length in bytes as a 32-bit unsigned integer, MSB first
//   - Extension: the payload's file extension, right-justified in a 64-bit window
//   - Payload: payload bytes, each written MSB first (bit 7 down to bit 0)
//
// The prefix preceding payload data is therefore 54 + 32 + 64 = 150 bytes,
// and a carrier of n bytes can host payloads strictly smaller than
// (n - 150) / 8 bytes.
//
// # Extension Window
//
// The extension's ASCII bytes are read as one big-endian integer and written
// as its minimal binary representation, right-justified in the window. The
// leading window bits are cleared. Decoding splits the window into 8-bit
// groups anchored at the window start and drops groups that are all zero.
// Because the value is right-justified, group boundaries always coincide with
// the encoded byte boundaries, so any extension of 1 to 8 ASCII characters
// without NUL bytes round-trips exactly.
//
// Extensions end up in file names and HTTP headers, so both Encode and Decode
// restrict them further with ValidateExtension: printable ASCII only, no
// space, slash, backslash or double quote, and no "..".
//
// # Usage
//
//	c := codec.NewCodec()
//
//	// Hide a payload
//	out, err := c.Encode(carrier, codec.Payload{Extension: "txt", Data: data})
//	if err != nil {
//	    return err
//	}
//
//	// Recover it
//	p, err := c.Decode(out)
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Failures are reported as wrapped sentinel errors that can be matched with
// errors.Is:
//   - ErrInsufficientCapacity: the payload does not fit in the carrier
//   - ErrBufferTooShort: the carrier is shorter than the layout needs
//   - ErrInvalidExtension: the extension cannot be carried by the window
//   - ErrInvalidLayout: a custom Layout is not self-consistent
//
// Encode never mutates its input. It works on a private copy and returns the
// copy only when every field was written.
//
// # Thread Safety
//
// Codec values are immutable and safe for concurrent use. Carrier buffers
// are owned by the caller; concurrent operations must not share them.
package codec
