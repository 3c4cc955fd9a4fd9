package source

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// File is one source file of a compilation unit, decoded to UTF-8.
type File struct {
	Path string
	Text string
}

func (f *File) String() string {
	return f.Path
}

// ReadFile reads and decodes the file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// Decode turns raw bytes into a File. A UTF-16 byte order mark switches the
// decoder, a UTF-8 one is dropped, and anything else must be valid UTF-8.
func Decode(path string, data []byte) (*File, error) {
	if !utf16BOM(data) && !utf8.Valid(data) {
		return nil, fmt.Errorf("%v: file is not valid UTF-8", path)
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return &File{Path: path, Text: string(text)}, nil
}

func utf16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}
