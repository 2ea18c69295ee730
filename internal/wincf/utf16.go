package wincf

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeText converts s to the CF_UNICODETEXT layout: UTF-16LE code units
// followed by a NUL terminator.
func EncodeText(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("utf-16 encode: %w", err)
	}
	return append(b, 0, 0), nil
}

// DecodeText converts a CF_UNICODETEXT buffer to a Go string, stopping at
// the first NUL code unit. A dangling odd byte is ignored.
func DecodeText(data []byte) (string, error) {
	n := len(data) &^ 1
	for i := 0; i < n; i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			n = i
			break
		}
	}
	b, err := utf16le.NewDecoder().Bytes(data[:n])
	if err != nil {
		return "", fmt.Errorf("utf-16 decode: %w", err)
	}
	return string(b), nil
}

// NulTerminated returns s as UTF-8 bytes with a NUL terminator, the layout
// used for registered text formats such as "Rich Text Format".
func NulTerminated(s string) []byte {
	return append([]byte(s), 0)
}
