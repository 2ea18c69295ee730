package clip

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"go.klb.dev/xclipboard/imagecodec"
)

// Backend names accepted by WithBackendName.
const (
	BackendAuto       = "auto"
	BackendXclip      = "xclip"
	BackendPasteboard = "pasteboard"
	BackendWin32      = "win32"
	BackendPortable   = "portable"
	BackendMemory     = "memory"
)

// BackendNames lists every name WithBackendName accepts.
var BackendNames = []string{
	BackendAuto, BackendXclip, BackendPasteboard, BackendWin32, BackendPortable, BackendMemory,
}

type config struct {
	backend   Backend
	name      string
	platform  string
	codec     imagecodec.Codec
	xclipPath string
	timeout   time.Duration
	log       *slog.Logger
}

func (c *config) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return slog.Default()
}

// Option configures New.
type Option func(*config)

// WithBackend uses b instead of detecting the platform.
func WithBackend(b Backend) Option {
	return func(c *config) { c.backend = b }
}

// WithBackendName selects a backend by name. "" and "auto" detect the
// platform.
func WithBackendName(name string) Option {
	return func(c *config) { c.name = strings.ToLower(strings.TrimSpace(name)) }
}

// WithPlatform overrides the platform identifier used for detection. It
// defaults to runtime.GOOS.
func WithPlatform(goos string) Option {
	return func(c *config) { c.platform = goos }
}

// WithCodec sets the image codec used for best-effort conversions. A nil
// codec disables conversion: native images are returned untranscoded.
func WithCodec(codec imagecodec.Codec) Option {
	return func(c *config) { c.codec = codec }
}

// WithXclipPath sets the xclip binary, either a path or a name looked up on
// PATH.
func WithXclipPath(path string) Option {
	return func(c *config) { c.xclipPath = path }
}

// WithTimeout bounds each external clipboard command. Zero keeps
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithLogger sets the logger used for debug output. It defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// Clipboard is the platform-independent clipboard API.
type Clipboard struct {
	backend Backend
}

// New returns a Clipboard bound to the backend selected by opts.
func New(opts ...Option) (*Clipboard, error) {
	cfg := &config{
		platform: runtime.GOOS,
		codec:    imagecodec.Default(),
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.backend != nil {
		return &Clipboard{backend: cfg.backend}, nil
	}
	b, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("clipboard backend selected", "backend", b.Name(), "platform", cfg.platform)
	return &Clipboard{backend: b}, nil
}

func newBackend(cfg *config) (Backend, error) {
	switch cfg.name {
	case "", BackendAuto:
		return platformBackend(cfg)
	case BackendXclip:
		return newXclipBackend(cfg)
	case BackendPasteboard:
		return newPasteboardBackend(cfg)
	case BackendWin32:
		return newWin32Backend(cfg)
	case BackendPortable:
		return newPortableBackend(cfg)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want one of %s): %w",
			cfg.name, strings.Join(BackendNames, ", "), ErrClipboard)
	}
}

func platformBackend(cfg *config) (Backend, error) {
	switch p := cfg.platform; {
	case p == "windows":
		return newWin32Backend(cfg)
	case p == "darwin":
		return newPasteboardBackend(cfg)
	case strings.HasPrefix(p, "linux"):
		return newXclipBackend(cfg)
	default:
		return nil, &PlatformError{Platform: p}
	}
}

// Backend returns the active implementation.
func (c *Clipboard) Backend() Backend { return c.backend }

// Clear removes all clipboard content.
func (c *Clipboard) Clear() error { return c.backend.Clear() }

// AvailableFormats returns the formats currently on the clipboard, in the
// backend's order.
func (c *Clipboard) AvailableFormats() ([]Format, error) { return c.backend.AvailableFormats() }

// HasFormat reports whether f is currently on the clipboard.
func (c *Clipboard) HasFormat(f Format) (bool, error) {
	formats, err := c.backend.AvailableFormats()
	if err != nil {
		return false, err
	}
	for _, have := range formats {
		if have == f {
			return true, nil
		}
	}
	return false, nil
}

// IsEmpty reports whether no supported format is on the clipboard.
func (c *Clipboard) IsEmpty() (bool, error) {
	formats, err := c.backend.AvailableFormats()
	if err != nil {
		return false, err
	}
	return len(formats) == 0, nil
}

// Get returns the content of the first available format, or nil when the
// clipboard is empty. The first format is taken as the backend reports it;
// no priority is applied.
func (c *Clipboard) Get() (*Content, error) {
	formats, err := c.backend.AvailableFormats()
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, nil
	}
	return c.GetFormat(formats[0])
}

// GetFormat returns the clipboard content for f, or nil when f is absent.
func (c *Clipboard) GetFormat(f Format) (*Content, error) {
	var (
		s   string
		ok  bool
		err error
	)
	switch f {
	case PlainText:
		s, ok, err = c.backend.Text()
	case HTML:
		s, ok, err = c.backend.HTML()
	case RTF:
		s, ok, err = c.backend.RTF()
	case Image:
		data, ok, err := c.backend.Image()
		if err != nil || !ok {
			return nil, err
		}
		content := NewImage(data)
		return &content, nil
	default:
		return nil, &FormatError{Format: f}
	}
	if err != nil || !ok {
		return nil, err
	}
	return &Content{Format: f, Text: s}, nil
}

// Set replaces the clipboard with content. fallback is written as plain
// text alongside HTML and RTF content and ignored for other formats.
func (c *Clipboard) Set(content Content, fallback string) error {
	switch content.Format {
	case PlainText:
		return c.backend.SetText(content.Text)
	case HTML:
		return c.backend.SetHTML(content.Text, fallback)
	case RTF:
		return c.backend.SetRTF(content.Text, fallback)
	case Image:
		return c.backend.SetImage(content.Data)
	default:
		return &FormatError{Format: content.Format}
	}
}

// Text returns the plain text on the clipboard.
func (c *Clipboard) Text() (string, bool, error) { return c.backend.Text() }

// HTML returns the HTML on the clipboard.
func (c *Clipboard) HTML() (string, bool, error) { return c.backend.HTML() }

// RTF returns the RTF on the clipboard.
func (c *Clipboard) RTF() (string, bool, error) { return c.backend.RTF() }

// Image returns the image on the clipboard as PNG bytes.
func (c *Clipboard) Image() ([]byte, bool, error) { return c.backend.Image() }

// SetText replaces the clipboard with text.
func (c *Clipboard) SetText(text string) error { return c.backend.SetText(text) }

// SetHTML replaces the clipboard with html and an optional plain-text fallback.
func (c *Clipboard) SetHTML(html, fallback string) error { return c.backend.SetHTML(html, fallback) }

// SetRTF replaces the clipboard with rtf and an optional plain-text fallback.
func (c *Clipboard) SetRTF(rtf, fallback string) error { return c.backend.SetRTF(rtf, fallback) }

// SetImage replaces the clipboard with PNG image data.
func (c *Clipboard) SetImage(png []byte) error { return c.backend.SetImage(png) }
