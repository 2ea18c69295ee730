package wincf

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderLen(t *testing.T) {
	assert.Equal(t, 105, headerLen)
}

// headerValue reads one decimal offset out of an encoded header.
func headerValue(t *testing.T, data []byte, key string) int {
	t.Helper()
	for _, line := range strings.Split(string(data[:headerLen]), "\r\n") {
		if v, ok := strings.CutPrefix(line, key+":"); ok {
			n, err := strconv.Atoi(v)
			require.NoError(t, err)
			return n
		}
	}
	t.Fatalf("header %s missing", key)
	return 0
}

func TestEncodeHTML(t *testing.T) {
	for _, html := range []string{"", "<b>bold</b>", "<p>naïve café 日本語</p>"} {
		t.Run(html, func(t *testing.T) {
			data := EncodeHTML(html)
			o := HTMLOffsets(html)

			require.Equal(t, byte(0), data[len(data)-1])
			assert.Equal(t, o.EndHTML+1, len(data))
			assert.True(t, bytes.HasPrefix(data, []byte("Version:0.9\r\n")))

			assert.Equal(t, o.StartHTML, headerValue(t, data, "StartHTML"))
			assert.Equal(t, o.EndHTML, headerValue(t, data, "EndHTML"))
			assert.Equal(t, o.StartFragment, headerValue(t, data, "StartFragment"))
			assert.Equal(t, o.EndFragment, headerValue(t, data, "EndFragment"))

			assert.Equal(t, html, string(data[o.StartFragment:o.EndFragment]))
			assert.True(t, bytes.HasPrefix(data[o.StartHTML:], []byte("<!DOCTYPE html>")))
			assert.Equal(t, "</body></html>", string(data[o.EndHTML-len("</body></html>"):o.EndHTML]))
		})
	}
}

func TestHTMLOffsetsKnownValues(t *testing.T) {
	assert.Equal(t, Offsets{StartHTML: 105, EndHTML: 193, StartFragment: 152, EndFragment: 161}, HTMLOffsets("<b>hi</b>"))
}

func TestHTMLOffsetsByteLength(t *testing.T) {
	o := HTMLOffsets("é")
	assert.Equal(t, 2, o.EndFragment-o.StartFragment)
}

func TestDecodeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"round trip", EncodeHTML("<i>x</i>"), "<i>x</i>"},
		{"padded", append(EncodeHTML("<u>y</u>"), 0, 0, 0), "<u>y</u>"},
		{
			"foreign producer",
			[]byte("Version:1.0\r\nStartHTML:0000000097\r\n<html><body>\r\n<!--StartFragment--><a href=\"#\">z</a><!--EndFragment-->\r\n</body></html>"),
			`<a href="#">z</a>`,
		},
		{"no markers", []byte("<p>plain</p>\x00\x00"), "<p>plain</p>"},
		{"only start marker", []byte("<!--StartFragment-->abc"), "<!--StartFragment-->abc"},
		{"reversed markers", []byte("<!--EndFragment-->x<!--StartFragment-->"), "<!--EndFragment-->x<!--StartFragment-->"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeHTML(tt.in))
		})
	}
}

func TestTrimNUL(t *testing.T) {
	assert.Equal(t, []byte("rtf"), TrimNUL([]byte("rtf\x00\x00")))
	assert.Equal(t, []byte("a\x00b"), TrimNUL([]byte("a\x00b")))
	assert.Empty(t, TrimNUL([]byte{0, 0}))
}
