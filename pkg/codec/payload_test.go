package codec

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePayload_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "single byte", data: []byte{0xA5}},
		{name: "ascii", data: []byte("hello, carrier")},
		{name: "binary", data: []byte{0x00, 0xFF, 0x80, 0x01, 0x7F}},
		{name: "large", data: bytes.Repeat([]byte{0xC3, 0x3C}, 2048)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, PrefixLength+8*len(tc.data))
			for i := range buf {
				buf[i] = byte(i * 31)
			}

			require.NoError(t, EncodePayload(buf, DefaultLayout(), tc.data))
			got, err := DecodePayload(buf, DefaultLayout(), uint32(len(tc.data)))
			require.NoError(t, err)
			assert.Equal(t, tc.data, got)
		})
	}
}

func TestEncodePayload_BitOrder(t *testing.T) {
	buf := make([]byte, PrefixLength+16)
	require.NoError(t, EncodePayload(buf, DefaultLayout(), []byte{0x41, 0x0F}))

	want := []byte{0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1}
	for i, bit := range want {
		assert.Equal(t, bit, LSB(buf[PrefixLength+i]), "payload bit %d", i)
	}
}

func TestEncodePayload_PrefixUntouched(t *testing.T) {
	buf := bytes.Repeat([]byte{0x01}, PrefixLength+8)
	require.NoError(t, EncodePayload(buf, DefaultLayout(), []byte{0x00}))

	for i := 0; i < PrefixLength; i++ {
		assert.Equal(t, byte(0x01), buf[i], "prefix byte %d changed", i)
	}
	for i := PrefixLength; i < len(buf); i++ {
		assert.Equal(t, byte(0x00), buf[i])
	}
}

func TestPayload_BufferTooShort(t *testing.T) {
	buf := make([]byte, PrefixLength+8*3-1)

	err := EncodePayload(buf, DefaultLayout(), []byte("abc"))
	assert.True(t, errors.Is(err, ErrBufferTooShort), "got %v", err)

	_, err = DecodePayload(buf, DefaultLayout(), 3)
	assert.True(t, errors.Is(err, ErrBufferTooShort), "got %v", err)

	_, err = DecodePayload(buf, DefaultLayout(), 0xFFFFFFFF)
	assert.True(t, errors.Is(err, ErrBufferTooShort), "got %v", err)
}

func TestPayloadSize(t *testing.T) {
	p := Payload{Extension: "bin", Data: make([]byte, 1234)}
	assert.Equal(t, uint32(1234), p.Size())
}
