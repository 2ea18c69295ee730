// Package clip provides a unified interface to the system clipboard across
// platforms. Every platform implementation satisfies Backend; Clipboard
// selects one at construction and routes the generic operations to it.
//
//	clip_windows.go: Win32 clipboard via golang.org/x/sys/windows
//	clip_darwin.go: NSPasteboard via purego/objc
//	xclip.go: Linux via the xclip command, one process per call
//	portable.go: golang.design/x/clipboard, text and image only
//	memory.go: in-process map, used for injection and tests
package clip

// Backend is the interface that all platform clipboard implementations satisfy.
//
// Getters report absence with ok == false and a nil error; only a failure to
// talk to the clipboard is an error. Every setter replaces the whole
// clipboard: the previous generation is cleared before anything is written.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Clear removes all clipboard content.
	Clear() error

	// AvailableFormats returns the formats currently present, without
	// duplicates. Order is backend-defined.
	AvailableFormats() ([]Format, error)

	Text() (string, bool, error)
	HTML() (string, bool, error)
	RTF() (string, bool, error)

	// Image returns PNG bytes, converting from the native image
	// representation when one is found.
	Image() ([]byte, bool, error)

	SetText(text string) error

	// SetHTML writes html and, when fallback is non-empty, a plain-text
	// representation in the same generation.
	SetHTML(html, fallback string) error

	// SetRTF writes rtf and, when fallback is non-empty, a plain-text
	// representation in the same generation.
	SetRTF(rtf, fallback string) error

	// SetImage writes PNG-encoded image data.
	SetImage(png []byte) error
}

// appendFormat appends f to formats unless it is already present.
func appendFormat(formats []Format, f Format) []Format {
	for _, have := range formats {
		if have == f {
			return formats
		}
	}
	return append(formats, f)
}
