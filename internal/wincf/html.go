// Package wincf encodes and decodes the byte layouts the Windows clipboard
// uses for text and HTML. It has no build constraints so the conversions can
// be exercised on every platform.
package wincf

import (
	"fmt"
	"strings"
)

const (
	fragmentStart = "<!--StartFragment-->"
	fragmentEnd   = "<!--EndFragment-->"

	htmlPrefix = "<!DOCTYPE html><html><body>" + fragmentStart
	htmlSuffix = fragmentEnd + "</body></html>"

	headerFormat = "Version:0.9\r\n" +
		"StartHTML:%010d\r\n" +
		"EndHTML:%010d\r\n" +
		"StartFragment:%010d\r\n" +
		"EndFragment:%010d\r\n"
)

// headerLen is constant because every offset is printed as ten digits.
var headerLen = len(fmt.Sprintf(headerFormat, 0, 0, 0, 0))

// Offsets are the byte positions recorded in a CF_HTML header.
type Offsets struct {
	StartHTML     int
	EndHTML       int
	StartFragment int
	EndFragment   int
}

// HTMLOffsets computes the header offsets for a fragment of html.
func HTMLOffsets(html string) Offsets {
	var o Offsets
	o.StartHTML = headerLen
	o.StartFragment = o.StartHTML + len(htmlPrefix)
	o.EndFragment = o.StartFragment + len(html)
	o.EndHTML = o.EndFragment + len(htmlSuffix)
	return o
}

// EncodeHTML wraps an HTML fragment in the "HTML Format" envelope. The
// returned buffer is NUL terminated, ready to be handed to the clipboard.
func EncodeHTML(html string) []byte {
	o := HTMLOffsets(html)
	var b strings.Builder
	b.Grow(o.EndHTML + 1)
	fmt.Fprintf(&b, headerFormat, o.StartHTML, o.EndHTML, o.StartFragment, o.EndFragment)
	b.WriteString(htmlPrefix)
	b.WriteString(html)
	b.WriteString(htmlSuffix)
	b.WriteByte(0)
	return []byte(b.String())
}

// DecodeHTML extracts the fragment between the StartFragment and EndFragment
// markers. Without both markers the whole buffer is returned, minus any
// trailing NUL padding.
func DecodeHTML(data []byte) string {
	s := string(TrimNUL(data))
	start := strings.Index(s, fragmentStart)
	end := strings.Index(s, fragmentEnd)
	if start == -1 || end == -1 {
		return s
	}
	start += len(fragmentStart)
	if end < start {
		return s
	}
	return s[start:end]
}

// TrimNUL removes trailing NUL bytes. Clipboard buffers are often padded past
// the terminator because GlobalSize rounds allocations up.
func TrimNUL(data []byte) []byte {
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return data
}
