package clip

// NSPasteboard type identifiers (UTIs).
const (
	pbTypeString = "public.utf8-plain-text"
	pbTypeHTML   = "public.html"
	pbTypeRTF    = "public.rtf"
	pbTypeRTFD   = "com.apple.flat-rtfd"
	pbTypePNG    = "public.png"
	pbTypeTIFF   = "public.tiff"
)

// pasteboardFormats intersects the declared pasteboard types with the types
// this package understands. The result is always in PlainText, HTML, RTF,
// Image order.
func pasteboardFormats(types []string) []Format {
	have := make(map[string]bool, len(types))
	for _, t := range types {
		have[t] = true
	}
	var formats []Format
	if have[pbTypeString] {
		formats = append(formats, PlainText)
	}
	if have[pbTypeHTML] {
		formats = append(formats, HTML)
	}
	if have[pbTypeRTF] || have[pbTypeRTFD] {
		formats = append(formats, RTF)
	}
	if have[pbTypePNG] || have[pbTypeTIFF] {
		formats = append(formats, Image)
	}
	return formats
}

// pbItem is one representation written to the pasteboard. String items go
// through setString:forType:, everything else through setData:forType:.
type pbItem struct {
	uti    string
	data   []byte
	text   string
	isText bool
}

func textItem(uti, s string) pbItem { return pbItem{uti: uti, text: s, isText: true} }

func dataItem(uti string, data []byte) pbItem { return pbItem{uti: uti, data: data} }

// richItems returns the representations for a rich write: the rich type,
// plus the string type only when a fallback is given.
func richItems(uti, rich, fallback string) []pbItem {
	items := []pbItem{dataItem(uti, []byte(rich))}
	if fallback != "" {
		items = append(items, textItem(pbTypeString, fallback))
	}
	return items
}

// declaredTypes is the declaration sent before items are written. Deriving
// it from the items means nothing undeclared can be written.
func declaredTypes(items []pbItem) []string {
	types := make([]string, len(items))
	for i, it := range items {
		types[i] = it.uti
	}
	return types
}
