package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"text", PlainText, true},
		{"plain_text", PlainText, true},
		{"TEXT", PlainText, true},
		{"html", HTML, true},
		{"Html", HTML, true},
		{"rtf", RTF, true},
		{"image", Image, true},
		{"IMAGE", Image, true},
		{"", 0, false},
		{"png", 0, false},
		{"text/plain", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFormat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, f.Valid(), f)
		parsed, ok := ParseFormat(f.String())
		assert.True(t, ok, f)
		assert.Equal(t, f, parsed)
	}
	assert.Equal(t, "plain_text", PlainText.String())
	assert.Equal(t, "format(0)", Format(0).String())
	assert.False(t, Format(0).Valid())
	assert.False(t, Format(99).Valid())
}

func TestFormatMIME(t *testing.T) {
	assert.Equal(t, "text/plain", PlainText.MIME())
	assert.Equal(t, "text/html", HTML.MIME())
	assert.Equal(t, "text/rtf", RTF.MIME())
	assert.Equal(t, "image/png", Image.MIME())
	assert.Empty(t, Format(42).MIME())
}

func TestContent(t *testing.T) {
	text := NewText("hello")
	assert.Equal(t, PlainText, text.Format)
	assert.False(t, text.IsBinary())
	assert.Equal(t, []byte("hello"), text.Bytes())

	assert.Equal(t, HTML, NewHTML("<b>x</b>").Format)
	assert.Equal(t, RTF, NewRTF(`{\rtf1 x}`).Format)

	img := NewImage([]byte{1, 2, 3})
	assert.True(t, img.IsBinary())
	assert.Equal(t, []byte{1, 2, 3}, img.Bytes())
	assert.Empty(t, img.Text)
}
