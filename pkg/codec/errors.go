package codec

import "github.com/cockroachdb/errors"

var (
	ErrInsufficientCapacity = errors.New("codec: insufficient carrier capacity")
	ErrBufferTooShort       = errors.New("codec: carrier buffer too short")
	ErrInvalidExtension     = errors.New("codec: invalid extension encoding")
	ErrInvalidLayout        = errors.New("codec: invalid layout")
)

// requireLen fails with ErrBufferTooShort when buf cannot be indexed up to need.
func requireLen(buf []byte, need int, field string) error {
	if len(buf) < need {
		return errors.Wrapf(ErrBufferTooShort, "%s needs %d bytes, carrier has %d", field, need, len(buf))
	}
	return nil
}
