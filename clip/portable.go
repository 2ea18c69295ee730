package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

// portableBackend wraps golang.design/x/clipboard. That library only knows
// text and PNG images, so HTML and RTF are never reported, and rich writes
// degrade to plain text.
type portableBackend struct {
	log *slog.Logger
}

// newPortableBackend initialises the library. It fails without a display.
func newPortableBackend(cfg *config) (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, accessErr("init golang.design/x/clipboard", err)
	}
	return &portableBackend{log: cfg.logger()}, nil
}

func (b *portableBackend) Name() string { return "golang.design/x/clipboard" }

func (b *portableBackend) Clear() error {
	clipboard.Write(clipboard.FmtText, nil)
	return nil
}

func (b *portableBackend) AvailableFormats() ([]Format, error) {
	var formats []Format
	if len(clipboard.Read(clipboard.FmtText)) > 0 {
		formats = append(formats, PlainText)
	}
	if len(clipboard.Read(clipboard.FmtImage)) > 0 {
		formats = append(formats, Image)
	}
	return formats, nil
}

func (b *portableBackend) Text() (string, bool, error) {
	text := clipboard.Read(clipboard.FmtText)
	if len(text) == 0 {
		return "", false, nil
	}
	return string(text), true, nil
}

func (b *portableBackend) HTML() (string, bool, error) { return "", false, nil }
func (b *portableBackend) RTF() (string, bool, error)  { return "", false, nil }

func (b *portableBackend) Image() ([]byte, bool, error) {
	img := clipboard.Read(clipboard.FmtImage)
	if len(img) == 0 {
		return nil, false, nil
	}
	return img, true, nil
}

func (b *portableBackend) SetText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (b *portableBackend) SetHTML(html, fallback string) error {
	return b.setRich(HTML, html, fallback)
}

func (b *portableBackend) SetRTF(rtf, fallback string) error {
	return b.setRich(RTF, rtf, fallback)
}

func (b *portableBackend) setRich(f Format, rich, fallback string) error {
	text := fallback
	if text == "" {
		text = rich
	}
	b.log.Debug("rich format stored as plain text", "backend", b.Name(), "format", f)
	return b.SetText(text)
}

func (b *portableBackend) SetImage(png []byte) error {
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}
