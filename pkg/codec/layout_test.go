package codec

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout(t *testing.T) {
	assert.Equal(t, 54, DefaultLayout().HeaderSkip)
	assert.Equal(t, 32, DefaultLayout().SizeFieldBits)
	assert.Equal(t, 64, DefaultLayout().ExtensionFieldBits)
	assert.Equal(t, 150, DefaultLayout().PrefixLength())
	assert.Equal(t, PrefixLength, DefaultLayout().PrefixLength())
	assert.Equal(t, 54, DefaultLayout().SizeFieldStart())
	assert.Equal(t, 86, DefaultLayout().ExtensionFieldStart())
	assert.Equal(t, 8, DefaultLayout().MaxExtensionLength())
	assert.NoError(t, DefaultLayout().Validate())
}

func TestLayoutValidate(t *testing.T) {
	testCases := []struct {
		name   string
		layout Layout
		valid  bool
	}{
		{name: "default", layout: DefaultLayout(), valid: true},
		{name: "no header", layout: Layout{0, 16, 32}, valid: true},
		{name: "negative header", layout: Layout{-1, 32, 64}},
		{name: "zero size bits", layout: Layout{54, 0, 64}},
		{name: "size bits too wide", layout: Layout{54, 33, 64}},
		{name: "extension not whole bytes", layout: Layout{54, 32, 60}},
		{name: "extension too wide", layout: Layout{54, 32, 72}},
		{name: "extension empty", layout: Layout{54, 32, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.layout.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidLayout), "got %v", err)
		})
	}
}

func TestNewCodecWithLayout(t *testing.T) {
	c, err := NewCodecWithLayout(Layout{HeaderSkip: 10, SizeFieldBits: 16, ExtensionFieldBits: 32})
	assert.NoError(t, err)
	assert.Equal(t, 58, c.Layout().PrefixLength())

	_, err = NewCodecWithLayout(Layout{HeaderSkip: 10, SizeFieldBits: 40, ExtensionFieldBits: 32})
	assert.True(t, errors.Is(err, ErrInvalidLayout))
}
