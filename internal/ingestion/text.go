package ingestion

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyDocument  = errors.New("document is empty")
	ErrBinaryDocument = errors.New("document looks like binary data")
)

// binarySniffLen is how many leading bytes are inspected for binary content.
const binarySniffLen = 8000

func decodeText(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrEmptyDocument
	}
	if IsBinaryData(data) {
		return "", ErrBinaryDocument
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return strings.TrimPrefix(text, "\ufeff"), nil
}

// IsBinaryData reports whether data contains a NUL byte in its leading bytes.
func IsBinaryData(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
