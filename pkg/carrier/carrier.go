// Package carrier inspects and generates bitmap carriers.
//
// The codec treats a carrier as an opaque byte sequence after a fixed header
// skip. This package is where the bitmap itself is looked at: it reports the
// image geometry, whether the pixel array really starts where the layout
// expects it, and how much payload the file can hold.
package carrier

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"math/rand"

	"github.com/cockroachdb/errors"
	"golang.org/x/image/bmp"

	"github.com/ssargent/lsbmp/pkg/codec"
)

const (
	fileHeaderLen  = 14
	offBitsOffset  = 10
	infoSizeOffset = 14
	bitCountOffset = 28
	minHeaderLen   = 30
)

var (
	ErrNotBitmap         = errors.New("carrier: not a bitmap")
	ErrUnsupportedBitmap = errors.New("carrier: unsupported bitmap")
)

// Info describes a bitmap carrier.
type Info struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	BitsPerPixel   int    `json:"bits_per_pixel"`
	InfoHeaderSize uint32 `json:"info_header_size"`
	PixelOffset    uint32 `json:"pixel_offset"`
	FileSize       int    `json:"file_size"`
	// HeaderMatchesLayout is true when the pixel array starts right after the
	// bytes the layout skips.
	HeaderMatchesLayout bool `json:"header_matches_layout"`
	// CapacityBytes is the largest payload the carrier accepts, or -1.
	CapacityBytes int `json:"capacity_bytes"`
}

// IsBitmap reports whether data starts with the "BM" signature.
func IsBitmap(data []byte) bool {
	return len(data) >= 2 && data[0] == 'B' && data[1] == 'M'
}

// PixelOffset returns the bfOffBits field of the bitmap file header: the
// offset of the pixel array from the start of the file.
func PixelOffset(data []byte) (uint32, error) {
	if !IsBitmap(data) || len(data) < fileHeaderLen {
		return 0, errors.Wrapf(ErrNotBitmap, "%d bytes without a bitmap header", len(data))
	}
	return binary.LittleEndian.Uint32(data[offBitsOffset:]), nil
}

// Inspect reads the bitmap headers of data and computes its capacity under l.
func Inspect(data []byte, l codec.Layout) (*Info, error) {
	if !IsBitmap(data) || len(data) < minHeaderLen {
		return nil, errors.Wrapf(ErrNotBitmap, "%d bytes without a bitmap header", len(data))
	}

	cfg, err := bmp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedBitmap, "%v", err)
	}

	info := &Info{
		Width:          cfg.Width,
		Height:         cfg.Height,
		BitsPerPixel:   int(binary.LittleEndian.Uint16(data[bitCountOffset:])),
		InfoHeaderSize: binary.LittleEndian.Uint32(data[infoSizeOffset:]),
		PixelOffset:    binary.LittleEndian.Uint32(data[offBitsOffset:]),
		FileSize:       len(data),
		CapacityBytes:  codec.Capacity(len(data), l),
	}
	info.HeaderMatchesLayout = int(info.PixelOffset) == l.HeaderSkip
	return info, nil
}

// Generate returns a 24-bit bitmap of the given size. Pixels are random when
// r is non-nil and mid-gray otherwise. The result has a 54-byte header, which
// matches codec.DefaultLayout().
func Generate(width, height int, r *rand.Rand) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Newf("carrier: invalid dimensions %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
			if r != nil {
				c.R, c.G, c.B = uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256))
			}
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "carrier: encode bitmap")
	}
	return buf.Bytes(), nil
}

// SizeFor returns the dimensions of the smallest square 24-bit carrier that
// can hold payloadLen bytes under l.
func SizeFor(payloadLen int, l codec.Layout) (width, height int) {
	side := 1
	for {
		// 24-bit rows are padded to 4 bytes
		rowLen := (side*3 + 3) &^ 3
		total := fileHeaderLen + 40 + rowLen*side
		if codec.HasCapacity(total, payloadLen, l) {
			return side, side
		}
		side++
	}
}
