// Package ingestion decodes uploaded résumé documents into plain text.
package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for extensions without a decoder.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DecodeError reports a document that could not be turned into text.
type DecodeError struct {
	Name   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("decoding %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("decoding %s as %s: %v", e.Name, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type decoder func(data []byte) (string, error)

var decoders = map[string]decoder{
	".txt":  decodeText,
	".text": decodeText,
	".md":   decodeText,
	".pdf":  decodePDF,
	".docx": decodeDocx,
}

// ReadDocument reads and decodes the file at path.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &DecodeError{Name: path, Err: err}
	}
	return Decode(path, data)
}

// Decode picks a decoder by the extension of name.
func Decode(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	format := strings.TrimPrefix(ext, ".")

	dec, ok := decoders[ext]
	if !ok {
		return "", &DecodeError{Name: name, Format: format, Err: ErrUnsupportedFormat}
	}

	text, err := dec(data)
	if err != nil {
		return "", &DecodeError{Name: name, Format: format, Err: err}
	}

	return text, nil
}
