// Package fileio holds the file handling around the codec: reading inputs
// fully into memory, naming outputs and writing them without ever leaving a
// partial file behind.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCarrierExtension is appended to encoded outputs named without one.
const DefaultCarrierExtension = "bmp"

var (
	ErrNotExist = errors.New("fileio: file does not exist")
	ErrExists   = errors.New("fileio: file already exists")
)

// Extension returns the text after the last '.' of the base name of path,
// without the dot. It returns "" when there is none.
func Extension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i == -1 {
		return ""
	}
	return name[i+1:]
}

// HasExtension reports whether path ends with ext, ignoring case.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(Extension(path), ext)
}

// EncodedOutputPath returns p, with ".bmp" appended when p has no extension.
func EncodedOutputPath(p string) string {
	if Extension(p) == "" {
		return p + "." + DefaultCarrierExtension
	}
	return p
}

// DecodedOutputPath returns the path a recovered payload is written to. The
// directory component of target is kept.
func DecodedOutputPath(target, ext string) string {
	if ext == "" {
		return target
	}
	return target + "." + ext
}

// Exists reports whether something is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadAll reads the whole file at path.
func ReadAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteNew writes data to path, which must not exist yet. The bytes go to a
// temporary file in the same directory that is renamed into place once they
// are all on disk.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	if Exists(path) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	// Link fails if path appeared meanwhile, unlike Rename.
	if err := os.Link(tmpName, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		if err := os.Rename(tmpName, path); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", path, err)
		}
		tmpName = ""
		return nil
	}
	return nil
}
