package clip

import (
	"strconv"
	"strings"
)

// Format identifies one of the content kinds the clipboard can carry.
type Format int

const (
	PlainText Format = iota + 1
	HTML
	RTF
	Image
)

// Formats lists every supported format.
var Formats = []Format{PlainText, HTML, RTF, Image}

var formatNames = map[Format]string{
	PlainText: "plain_text",
	HTML:      "html",
	RTF:       "rtf",
	Image:     "image",
}

var formatMIME = map[Format]string{
	PlainText: "text/plain",
	HTML:      "text/html",
	RTF:       "text/rtf",
	Image:     "image/png",
}

// ParseFormat converts a configuration token to a Format. Matching is
// case-insensitive. Unknown tokens, including "", report false.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "text", "plain_text":
		return PlainText, true
	case "html":
		return HTML, true
	case "rtf":
		return RTF, true
	case "image":
		return Image, true
	default:
		return 0, false
	}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// MIME returns the canonical MIME type for f, or "" for an invalid format.
func (f Format) MIME() string { return formatMIME[f] }

// Content pairs a clipboard payload with its format. Image content carries
// PNG bytes in Data; every other format carries its payload in Text.
type Content struct {
	Format Format
	Text   string
	Data   []byte
}

// NewText returns plain-text content.
func NewText(s string) Content { return Content{Format: PlainText, Text: s} }

// NewHTML returns HTML content.
func NewHTML(s string) Content { return Content{Format: HTML, Text: s} }

// NewRTF returns RTF content.
func NewRTF(s string) Content { return Content{Format: RTF, Text: s} }

// NewImage returns image content. data must be PNG encoded.
func NewImage(data []byte) Content { return Content{Format: Image, Data: data} }

// IsBinary reports whether the payload lives in Data.
func (c Content) IsBinary() bool { return c.Format == Image }

// Bytes returns the payload as raw bytes.
func (c Content) Bytes() []byte {
	if c.IsBinary() {
		return c.Data
	}
	return []byte(c.Text)
}
