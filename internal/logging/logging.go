// Package logging configures the global slog logger for the clipx binary.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"

	"go.klb.dev/xclipboard/clip"
)

// Format selects the log output format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// previewLen caps the text shown by LogContent at debug level.
const previewLen = 120

// ParseFormat converts a string to a Format, returning FormatAuto for unknown values.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "tint", "human":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ParseLevel converts a string to a slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// NewHandler returns the handler Setup installs, writing to w.
func NewHandler(w io.Writer, format Format, level slog.Level) slog.Handler {
	if format == FormatText || (format == FormatAuto && IsTTY(w)) {
		return tinter.NewHandler(w, &tinter.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup configures the global slog logger. Call once after flag/viper parsing.
func Setup(format Format, level slog.Level) *slog.Logger {
	l := slog.New(NewHandler(os.Stderr, format, level))
	slog.SetDefault(l)
	return l
}

// LogContent logs a clipboard generation at info level. At debug level it
// adds a short preview for text formats and the byte size for images.
func LogContent(l *slog.Logger, event string, c *clip.Content) {
	if l == nil {
		l = slog.Default()
	}
	if c == nil {
		l.Info(event, "format", "none")
		return
	}
	l.Info(event, "format", c.Format.String(), "mime", c.Format.MIME(), "size_bytes", len(c.Bytes()))

	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if c.IsBinary() {
		l.Debug("clipboard content", "format", c.Format.String(), "size_bytes", len(c.Data))
		return
	}
	l.Debug("clipboard content", "format", c.Format.String(), "preview", Preview(c.Text))
}

// Preview truncates s to previewLen runes, marking the cut with an ellipsis.
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "…"
}
