package clip

import "time"

// Standard Win32 clipboard format identifiers.
const (
	cfDIB         = 8
	cfUnicodeText = 13
	cfDIBV5       = 17
)

// Names of the formats registered with RegisterClipboardFormatW.
const (
	win32HTMLFormat = "HTML Format"
	win32RTFFormat  = "Rich Text Format"
	win32PNGFormat  = "PNG"
)

const (
	win32OpenAttempts = 10
	win32OpenBackoff  = 10 * time.Millisecond
)

// win32Registered holds the identifiers Windows assigned to the registered
// formats for this session.
type win32Registered struct {
	html uint32
	rtf  uint32
	png  uint32
}

// win32Formats maps enumerated clipboard format identifiers to formats,
// keeping first-seen order. Identifiers with no mapping are skipped.
func win32Formats(ids []uint32, reg win32Registered) []Format {
	var formats []Format
	for _, id := range ids {
		switch {
		case id == cfUnicodeText:
			formats = appendFormat(formats, PlainText)
		case id == reg.html && id != 0:
			formats = appendFormat(formats, HTML)
		case id == reg.rtf && id != 0:
			formats = appendFormat(formats, RTF)
		case id == cfDIB, id == cfDIBV5, id == reg.png && id != 0:
			formats = appendFormat(formats, Image)
		}
	}
	return formats
}
