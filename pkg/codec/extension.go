package codec

import (
	"math/bits"
	"strings"

	"github.com/cockroachdb/errors"
)

// ValidateExtension checks that ext can be stored in the extension window
// and used as a file name suffix: 1 to MaxExtensionLength printable ASCII
// characters, with no path separator, quote or "..".
func ValidateExtension(ext string, l Layout) error {
	if ext == "" {
		return errors.Wrap(ErrInvalidExtension, "empty extension")
	}
	if len(ext) > l.MaxExtensionLength() {
		return errors.Wrapf(ErrInvalidExtension, "extension %q longer than %d characters", ext, l.MaxExtensionLength())
	}
	for i := 0; i < len(ext); i++ {
		switch c := ext[i]; {
		case c <= ' ' || c > '~':
			return errors.Wrapf(ErrInvalidExtension, "extension %q has a non-printable byte at %d", ext, i)
		case c == '/' || c == '\\' || c == '"':
			return errors.Wrapf(ErrInvalidExtension, "extension %q has %q at %d", ext, c, i)
		}
	}
	if strings.Contains(ext, "..") {
		return errors.Wrapf(ErrInvalidExtension, "extension %q contains \"..\"", ext)
	}
	return nil
}

// ExtensionBits returns the minimal binary representation of ext read as a
// big-endian integer, one bit per element, most significant first.
func ExtensionBits(ext string, l Layout) ([]byte, error) {
	if err := ValidateExtension(ext, l); err != nil {
		return nil, err
	}

	var v uint64
	for i := 0; i < len(ext); i++ {
		v = v<<8 | uint64(ext[i])
	}

	n := bits.Len64(v)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(v>>(n-1-i)) & 0x01
	}
	return out, nil
}

// EncodeExtension writes ext right-justified into the extension window. The
// window bits in front of it are cleared.
func EncodeExtension(buf []byte, l Layout, ext string) error {
	start := l.ExtensionFieldStart()
	if err := requireLen(buf, start+l.ExtensionFieldBits, "extension field"); err != nil {
		return err
	}
	extBits, err := ExtensionBits(ext, l)
	if err != nil {
		return err
	}

	pad := l.ExtensionFieldBits - len(extBits)
	for i := 0; i < pad; i++ {
		buf[start+i] = SetLSB(buf[start+i], 0)
	}
	for i, bit := range extBits {
		pos := start + pad + i
		buf[pos] = SetLSB(buf[pos], bit)
	}
	return nil
}

// DecodeExtension reads the extension window in 8-bit groups starting at the
// window's first byte. Groups with every bit clear contribute no character.
// The result comes from carrier data and is not validated; see
// ValidateExtension.
func DecodeExtension(buf []byte, l Layout) (string, error) {
	start := l.ExtensionFieldStart()
	if err := requireLen(buf, start+l.ExtensionFieldBits, "extension field"); err != nil {
		return "", err
	}

	ext := make([]byte, 0, l.MaxExtensionLength())
	for g := 0; g < l.ExtensionFieldBits; g += 8 {
		var c byte
		for i := 0; i < 8; i++ {
			c = c<<1 | LSB(buf[start+g+i])
		}
		if c != 0 {
			ext = append(ext, c)
		}
	}
	return string(ext), nil
}
