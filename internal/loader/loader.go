package loader

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Func reads the whole file at path and returns it as text.
type Func func(path string) (string, error)

// FileError reports a failed read of a contact file. It wraps the
// underlying cause so errors.Is(err, fs.ErrNotExist) keeps working.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Load reads the file at path in one call and decodes it to UTF-8.
// A leading byte-order mark selects UTF-8 or UTF-16 decoding and is
// dropped from the result; without one the bytes are taken as UTF-8.
// The path is assumed to be non-empty.
func Load(path string) (string, error) {
	_, text, err := Read(path)
	return text, err
}

// Read is Load that also returns the bytes as stored on disk, before any
// byte-order mark is removed or UTF-16 is decoded.
func Read(path string) ([]byte, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &FileError{Path: path, Err: err}
	}
	text, err := Decode(b)
	if err != nil {
		return b, "", &FileError{Path: path, Err: err}
	}
	return b, text, nil
}

// Decode converts raw file bytes to text, honoring a byte-order mark.
func Decode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(out), nil
}
