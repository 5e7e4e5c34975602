package codec

import "github.com/cockroachdb/errors"

// Codec hides and recovers payloads using a fixed Layout.
type Codec struct {
	layout Layout
}

// NewCodec creates a codec for DefaultLayout().
func NewCodec() *Codec {
	return &Codec{layout: DefaultLayout()}
}

// NewCodecWithLayout creates a codec for a custom layout.
func NewCodecWithLayout(l Layout) (*Codec, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &Codec{layout: l}, nil
}

// Layout returns the layout used by the codec.
func (c *Codec) Layout() Layout {
	return c.layout
}

// Fits reports whether a payload of payloadLen bytes fits a carrier of
// carrierLen bytes.
func (c *Codec) Fits(carrierLen, payloadLen int) bool {
	return HasCapacity(carrierLen, payloadLen, c.layout)
}

// Capacity is Capacity under the codec's layout.
func (c *Codec) Capacity(carrierLen int) int {
	return Capacity(carrierLen, c.layout)
}

// Encode returns a copy of carrier with p hidden in it. The carrier argument
// is not modified. On error no output is returned.
func (c *Codec) Encode(carrier []byte, p Payload) ([]byte, error) {
	if !HasCapacity(len(carrier), len(p.Data), c.layout) {
		return nil, errors.Wrapf(ErrInsufficientCapacity,
			"payload of %d bytes needs a carrier larger than %d bytes, carrier has %d",
			len(p.Data), c.layout.PrefixLength()+8*len(p.Data), len(carrier))
	}
	// Validate up front so a bad extension fails before any field is written.
	if _, err := ExtensionBits(p.Extension, c.layout); err != nil {
		return nil, err
	}

	out := make([]byte, len(carrier))
	copy(out, carrier)

	if err := EncodeSize(out, c.layout, p.Size()); err != nil {
		return nil, errors.Wrap(err, "encode size")
	}
	if err := EncodeExtension(out, c.layout, p.Extension); err != nil {
		return nil, errors.Wrap(err, "encode extension")
	}
	if err := EncodePayload(out, c.layout, p.Data); err != nil {
		return nil, errors.Wrap(err, "encode payload")
	}
	return out, nil
}

// Decode recovers the payload hidden in carrier. The carrier is only read.
func (c *Codec) Decode(carrier []byte) (*Payload, error) {
	size, err := DecodeSize(carrier, c.layout)
	if err != nil {
		return nil, errors.Wrap(err, "decode size")
	}
	ext, err := DecodeExtension(carrier, c.layout)
	if err != nil {
		return nil, errors.Wrap(err, "decode extension")
	}
	if err := ValidateExtension(ext, c.layout); err != nil {
		return nil, errors.Wrap(err, "decoded extension")
	}
	data, err := DecodePayload(carrier, c.layout, size)
	if err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}
	return &Payload{Extension: ext, Data: data}, nil
}
