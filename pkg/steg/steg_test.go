package steg

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/lsbmp/pkg/carrier"
	"github.com/ssargent/lsbmp/pkg/codec"
)

type fixture struct {
	dir     string
	carrier string
	payload string
	data    []byte
}

func setupFixture(t *testing.T, payload []byte, payloadName string) fixture {
	t.Helper()
	dir := t.TempDir()

	img, err := carrier.Generate(64, 64, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	f := fixture{
		dir:     dir,
		carrier: filepath.Join(dir, "cover.bmp"),
		payload: filepath.Join(dir, payloadName),
		data:    payload,
	}
	require.NoError(t, os.WriteFile(f.carrier, img, 0644))
	require.NoError(t, os.WriteFile(f.payload, payload, 0644))
	return f
}

func newTestService(buf *bytes.Buffer) *Service {
	return NewService(codec.NewCodec(), DefaultOptions(), zerolog.New(buf))
}

func TestService_HideReveal(t *testing.T) {
	var logs bytes.Buffer
	svc := newTestService(&logs)
	f := setupFixture(t, []byte("meet at the old mill"), "note.txt")
	ctx := context.Background()

	hidden, err := svc.Hide(ctx, HideRequest{
		CarrierPath: f.carrier,
		PayloadPath: f.payload,
		OutputPath:  filepath.Join(f.dir, "stego"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "stego.bmp"), hidden.OutputPath)
	assert.Equal(t, len(f.data), hidden.PayloadSize)
	assert.Equal(t, "txt", hidden.Extension)
	assert.FileExists(t, hidden.OutputPath)
	assert.Contains(t, logs.String(), "payload hidden")

	revealed, err := svc.Reveal(ctx, RevealRequest{
		CarrierPath: hidden.OutputPath,
		OutputPath:  filepath.Join(f.dir, "recovered"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "recovered.txt"), revealed.OutputPath)
	assert.Equal(t, "txt", revealed.Extension)

	got, err := os.ReadFile(revealed.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, f.data, got)
}

func TestService_HideEmptyPayload(t *testing.T) {
	svc := newTestService(&bytes.Buffer{})
	f := setupFixture(t, []byte{}, "empty.dat")
	ctx := context.Background()

	hidden, err := svc.Hide(ctx, HideRequest{CarrierPath: f.carrier, PayloadPath: f.payload, OutputPath: filepath.Join(f.dir, "out.bmp")})
	require.NoError(t, err)

	revealed, err := svc.Reveal(ctx, RevealRequest{CarrierPath: hidden.OutputPath, OutputPath: filepath.Join(f.dir, "back")})
	require.NoError(t, err)
	assert.Equal(t, 0, revealed.PayloadSize)

	got, err := os.ReadFile(filepath.Join(f.dir, "back.dat"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_HideErrors(t *testing.T) {
	svc := newTestService(&bytes.Buffer{})
	ctx := context.Background()

	t.Run("missing payload", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		_, err := svc.Hide(ctx, HideRequest{CarrierPath: f.carrier, PayloadPath: filepath.Join(f.dir, "nope.txt"), OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, ErrPayloadNotFound), "got %v", err)
	})

	t.Run("missing carrier", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		_, err := svc.Hide(ctx, HideRequest{CarrierPath: filepath.Join(f.dir, "nope.bmp"), PayloadPath: f.payload, OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, ErrCarrierNotFound), "got %v", err)
	})

	t.Run("output exists", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		existing := filepath.Join(f.dir, "taken.bmp")
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

		_, err := svc.Hide(ctx, HideRequest{CarrierPath: f.carrier, PayloadPath: f.payload, OutputPath: filepath.Join(f.dir, "taken")})
		assert.True(t, errors.Is(err, ErrOutputExists), "got %v", err)

		got, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), got)
	})

	t.Run("carrier not bmp", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		png := filepath.Join(f.dir, "cover.png")
		require.NoError(t, os.Rename(f.carrier, png))

		_, err := svc.Hide(ctx, HideRequest{CarrierPath: png, PayloadPath: f.payload, OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, ErrNotBMP), "got %v", err)
	})

	t.Run("insufficient capacity leaves no output", func(t *testing.T) {
		f := setupFixture(t, bytes.Repeat([]byte("z"), 64*64*3), "big.bin")
		out := filepath.Join(f.dir, "out.bmp")

		_, err := svc.Hide(ctx, HideRequest{CarrierPath: f.carrier, PayloadPath: f.payload, OutputPath: out})
		assert.True(t, errors.Is(err, codec.ErrInsufficientCapacity), "got %v", err)
		assert.NoFileExists(t, out)
	})

	t.Run("payload without extension", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "README")
		out := filepath.Join(f.dir, "out.bmp")

		_, err := svc.Hide(ctx, HideRequest{CarrierPath: f.carrier, PayloadPath: f.payload, OutputPath: out})
		assert.True(t, errors.Is(err, codec.ErrInvalidExtension), "got %v", err)
		assert.NoFileExists(t, out)
	})

	t.Run("cancelled context", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.Hide(cctx, HideRequest{CarrierPath: f.carrier, PayloadPath: f.payload, OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}

func TestService_RevealErrors(t *testing.T) {
	svc := newTestService(&bytes.Buffer{})
	ctx := context.Background()

	t.Run("missing carrier", func(t *testing.T) {
		dir := t.TempDir()
		_, err := svc.Reveal(ctx, RevealRequest{CarrierPath: filepath.Join(dir, "nope.bmp"), OutputPath: filepath.Join(dir, "out")})
		assert.True(t, errors.Is(err, ErrCarrierNotFound), "got %v", err)
	})

	t.Run("output exists", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, "out"), nil, 0644))
		_, err := svc.Reveal(ctx, RevealRequest{CarrierPath: f.carrier, OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, ErrOutputExists), "got %v", err)
	})

	t.Run("final output exists", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		hidden, err := svc.Hide(ctx, HideRequest{CarrierPath: f.carrier, PayloadPath: f.payload, OutputPath: filepath.Join(f.dir, "stego.bmp")})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, "out.txt"), nil, 0644))

		_, err = svc.Reveal(ctx, RevealRequest{CarrierPath: hidden.OutputPath, OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, ErrOutputExists), "got %v", err)
	})

	t.Run("not bmp", func(t *testing.T) {
		f := setupFixture(t, []byte("x"), "x.txt")
		_, err := svc.Reveal(ctx, RevealRequest{CarrierPath: f.payload, OutputPath: filepath.Join(f.dir, "out")})
		assert.True(t, errors.Is(err, ErrNotBMP), "got %v", err)
	})

	t.Run("truncated carrier", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tiny.bmp")
		require.NoError(t, os.WriteFile(path, make([]byte, 80), 0644))

		_, err := svc.Reveal(ctx, RevealRequest{CarrierPath: path, OutputPath: filepath.Join(dir, "out")})
		assert.True(t, errors.Is(err, codec.ErrBufferTooShort), "got %v", err)
	})
}

func TestService_WarnsOnHeaderMismatch(t *testing.T) {
	var logs bytes.Buffer
	svc := newTestService(&logs)

	img, err := carrier.Generate(16, 16, nil)
	require.NoError(t, err)
	// pretend the pixel array starts later than the skip
	img[10] = 122

	_, err = svc.HideBytes(context.Background(), img, codec.Payload{Extension: "txt", Data: []byte("hi")})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "bitmap header size differs from the layout")
}

func TestService_RawCarrierAccepted(t *testing.T) {
	var logs bytes.Buffer
	svc := newTestService(&logs)

	encoded, err := svc.HideBytes(context.Background(), make([]byte, 500), codec.Payload{Extension: "bin", Data: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "treating it as raw bytes")

	p, err := svc.RevealBytes(context.Background(), encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, p.Data)
	assert.Equal(t, "bin", p.Extension)
}

// hostileCarrier returns a carrier whose extension window holds ext verbatim.
func hostileCarrier(t *testing.T, ext string, data []byte) []byte {
	t.Helper()
	l := codec.DefaultLayout()
	img, err := carrier.Generate(32, 32, nil)
	require.NoError(t, err)

	require.NoError(t, codec.EncodeSize(img, l, uint32(len(data))))
	start := l.ExtensionFieldStart() + l.ExtensionFieldBits - 8*len(ext)
	for i := 0; i < 8*len(ext); i++ {
		img[start+i] = codec.SetLSB(img[start+i], ext[i/8]>>(7-i%8)&0x01)
	}
	require.NoError(t, codec.EncodePayload(img, l, data))
	return img
}

func TestService_RevealRejectsTraversalExtension(t *testing.T) {
	svc := newTestService(&bytes.Buffer{})
	dir := t.TempDir()

	path := filepath.Join(dir, "cover.bmp")
	require.NoError(t, os.WriteFile(path, hostileCarrier(t, "d/../zz", []byte("pwn")), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "out.d"), 0755))

	res, err := svc.Reveal(context.Background(), RevealRequest{CarrierPath: path, OutputPath: filepath.Join(dir, "out")})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, codec.ErrInvalidExtension), "got %v", err)

	_, statErr := os.Stat(filepath.Join(dir, "zz"))
	assert.True(t, os.IsNotExist(statErr), "file written outside the target name")
}

func TestService_RevealBytesRejectsUnsafeExtension(t *testing.T) {
	svc := newTestService(&bytes.Buffer{})

	for _, ext := range []string{`a"b`, "x\r\ny", "..", `c:\x`} {
		p, err := svc.RevealBytes(context.Background(), hostileCarrier(t, ext, []byte("x")))
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, codec.ErrInvalidExtension), "ext %q: got %v", ext, err)
	}
}
