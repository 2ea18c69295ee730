package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasteboardFormats(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  []Format
	}{
		{"empty", nil, nil},
		{"string", []string{"public.utf8-plain-text", "NSStringPboardType"}, []Format{PlainText}},
		{"fixed order", []string{"public.png", "public.html", "public.utf8-plain-text"}, []Format{PlainText, HTML, Image}},
		{"rtfd counts as rtf", []string{"com.apple.flat-rtfd"}, []Format{RTF}},
		{"tiff counts as image", []string{"public.tiff"}, []Format{Image}},
		{"everything", []string{"public.tiff", "public.rtf", "public.html", "public.utf8-plain-text"}, Formats},
		{"unknown", []string{"com.example.private"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pasteboardFormats(tt.types))
		})
	}
}

func TestRichItems(t *testing.T) {
	items := richItems(pbTypeHTML, "<b>x</b>", "x")
	assert.Equal(t, []string{pbTypeHTML, pbTypeString}, declaredTypes(items))
	assert.Equal(t, []byte("<b>x</b>"), items[0].data)
	assert.False(t, items[0].isText)
	assert.True(t, items[1].isText)
	assert.Equal(t, "x", items[1].text)

	items = richItems(pbTypeRTF, `{\rtf1 x}`, "")
	assert.Equal(t, []string{pbTypeRTF}, declaredTypes(items))
}
