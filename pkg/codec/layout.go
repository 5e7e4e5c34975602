package codec

import "github.com/cockroachdb/errors"

const (
	// HeaderSkip is the number of leading carrier bytes that are never touched.
	HeaderSkip = 54
	// SizeFieldBits is the number of carrier bytes holding the payload length.
	SizeFieldBits = 32
	// ExtensionFieldBits is the number of carrier bytes holding the extension.
	ExtensionFieldBits = 64
	// PrefixLength is the offset of the first payload bit.
	PrefixLength = HeaderSkip + SizeFieldBits + ExtensionFieldBits
)

// Layout describes where each field lives in a carrier. All offsets used by
// the codec are derived from a Layout and a local position counter.
type Layout struct {
	HeaderSkip         int
	SizeFieldBits      int
	ExtensionFieldBits int
}

// DefaultLayout() returns the on-disk format produced and read by lsbmp.
func DefaultLayout() Layout {
	return Layout{
		HeaderSkip:         HeaderSkip,
		SizeFieldBits:      SizeFieldBits,
		ExtensionFieldBits: ExtensionFieldBits,
	}
}

// SizeFieldStart returns the carrier offset of the first size bit.
func (l Layout) SizeFieldStart() int {
	return l.HeaderSkip
}

// ExtensionFieldStart returns the carrier offset of the extension window.
func (l Layout) ExtensionFieldStart() int {
	return l.HeaderSkip + l.SizeFieldBits
}

// PrefixLength returns the carrier offset of the first payload bit.
func (l Layout) PrefixLength() int {
	return l.HeaderSkip + l.SizeFieldBits + l.ExtensionFieldBits
}

// MaxExtensionLength returns the longest extension, in characters, that fits
// in the extension window.
func (l Layout) MaxExtensionLength() int {
	return l.ExtensionFieldBits / 8
}

// Validate checks that the layout can be used by the codec.
func (l Layout) Validate() error {
	if l.HeaderSkip < 0 {
		return errors.Wrapf(ErrInvalidLayout, "negative header skip %d", l.HeaderSkip)
	}
	if l.SizeFieldBits < 1 || l.SizeFieldBits > 32 {
		return errors.Wrapf(ErrInvalidLayout, "size field must be 1..32 bits, got %d", l.SizeFieldBits)
	}
	if l.ExtensionFieldBits < 8 || l.ExtensionFieldBits > 64 || l.ExtensionFieldBits%8 != 0 {
		return errors.Wrapf(ErrInvalidLayout, "extension field must be 8..64 bits in whole bytes, got %d", l.ExtensionFieldBits)
	}
	return nil
}
