package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{path: "notes.txt", want: "txt"},
		{path: "/tmp/archive.tar.gz", want: "gz"},
		{path: "image.BMP", want: "BMP"},
		{path: "README", want: ""},
		{path: "dir.d/README", want: ""},
		{path: "trailing.", want: ""},
		{path: ".bashrc", want: "bashrc"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, Extension(tc.path))
		})
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("a.bmp", "bmp"))
	assert.True(t, HasExtension("a.BMP", "bmp"))
	assert.False(t, HasExtension("a.png", "bmp"))
	assert.False(t, HasExtension("bmp", "bmp"))
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, "out.bmp", EncodedOutputPath("out"))
	assert.Equal(t, "out.png", EncodedOutputPath("out.png"))
	assert.Equal(t, filepath.Join("dir", "out.bmp"), EncodedOutputPath(filepath.Join("dir", "out")))

	assert.Equal(t, "secret.txt", DecodedOutputPath("secret", "txt"))
	assert.Equal(t, filepath.Join("out", "secret.pdf"), DecodedOutputPath(filepath.Join("out", "secret"), "pdf"))
	assert.Equal(t, "secret", DecodedOutputPath("secret", ""))
}

func TestReadAll(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0600))

	data, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, err = ReadAll(filepath.Join(tmpDir, "missing"))
	assert.True(t, errors.Is(err, ErrNotExist), "got %v", err)
}

func TestWriteNew(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.bmp")

	require.NoError(t, WriteNew(path, []byte("content"), 0640))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)

	err = WriteNew(path, []byte("other"), 0640)
	assert.True(t, errors.Is(err, ErrExists), "got %v", err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)

	// no temp files left behind
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteNew_MissingDir(t *testing.T) {
	err := WriteNew(filepath.Join(t.TempDir(), "nope", "out.bmp"), []byte("x"), 0600)
	assert.Error(t, err)
}
