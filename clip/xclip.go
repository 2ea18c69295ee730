package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"go.klb.dev/xclipboard/imagecodec"
)

// DefaultTimeout bounds every external clipboard command.
const DefaultTimeout = 5 * time.Second

const (
	targetTargets = "TARGETS"
	targetUTF8    = "UTF8_STRING"
	targetText    = "text/plain"
	targetHTML    = "text/html"
	targetRTF     = "text/rtf"
	targetPNG     = "image/png"
)

// Raster targets tried, in order, when no PNG is offered.
var xclipImageTargets = []string{"image/jpeg", "image/bmp", "image/tiff"}

// commandRunner runs the clipboard utility. It exists so tests can stand in
// for xclip.
type commandRunner interface {
	output(ctx context.Context, args ...string) ([]byte, error)
	input(ctx context.Context, data []byte, args ...string) error
}

type execRunner struct {
	path string
}

func (r execRunner) output(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, r.path, args...).Output()
}

func (r execRunner) input(ctx context.Context, data []byte, args ...string) error {
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdin = bytes.NewReader(data)
	return cmd.Run()
}

// xclipBackend talks to the X11 CLIPBOARD selection through the xclip
// utility, one short-lived process per operation.
type xclipBackend struct {
	run     commandRunner
	path    string
	timeout time.Duration
	codec   imagecodec.Codec
	log     *slog.Logger
}

func newXclipBackend(cfg *config) (Backend, error) {
	name := cfg.xclipPath
	if name == "" {
		name = "xclip"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, accessErr("locate xclip", fmt.Errorf(
			"%w (install it with: sudo apt-get install xclip, or sudo dnf install xclip)", err))
	}
	return newXclipWithRunner(execRunner{path: path}, path, cfg), nil
}

func newXclipWithRunner(r commandRunner, path string, cfg *config) *xclipBackend {
	timeout := cfg.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &xclipBackend{
		run:     r,
		path:    path,
		timeout: timeout,
		codec:   cfg.codec,
		log:     cfg.logger(),
	}
}

func (b *xclipBackend) Name() string { return "xclip (" + b.path + ")" }

func (b *xclipBackend) read(target string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	out, err := b.run.output(ctx, "-selection", "clipboard", "-target", target, "-o")
	if timedOut(ctx, err) {
		return nil, false, &TimeoutError{Op: "read " + target, Timeout: b.timeout}
	}
	if err != nil || len(out) == 0 {
		if err != nil {
			b.log.Debug("xclip read: no data", "target", target, "err", err)
		}
		return nil, false, nil
	}
	return out, true, nil
}

func (b *xclipBackend) write(target string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	args := []string{"-selection", "clipboard", "-i"}
	if target != "" {
		args = []string{"-selection", "clipboard", "-target", target, "-i"}
	}
	err := b.run.input(ctx, data, args...)
	if timedOut(ctx, err) {
		return &TimeoutError{Op: "write " + target, Timeout: b.timeout}
	}
	if err != nil {
		op := "write"
		if target != "" {
			op += " " + target
		}
		return accessErr(op, err)
	}
	return nil
}

func timedOut(ctx context.Context, err error) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}

func (b *xclipBackend) Clear() error {
	return b.write("", nil)
}

func (b *xclipBackend) AvailableFormats() ([]Format, error) {
	out, ok, err := b.read(targetTargets)
	if err != nil || !ok {
		return nil, err
	}
	return classifyTargets(strings.Split(strings.TrimSpace(string(out)), "\n")), nil
}

// classifyTargets maps X11 selection targets to formats, keeping first-seen
// order. The substring matching is a heuristic, not a MIME parser: exotic
// targets that merely contain one of the probes are classified too.
func classifyTargets(targets []string) []Format {
	var formats []Format
	for _, t := range targets {
		if f, ok := classifyTarget(t); ok {
			formats = appendFormat(formats, f)
		}
	}
	return formats
}

func classifyTarget(target string) (Format, bool) {
	t := strings.ToLower(strings.TrimSpace(target))
	switch {
	case strings.Contains(t, "text/plain"), strings.Contains(t, "utf8_string"), t == "string":
		return PlainText, true
	case strings.Contains(t, "text/html"):
		return HTML, true
	case strings.Contains(t, "text/rtf"), strings.Contains(t, "richtext"):
		return RTF, true
	case strings.Contains(t, "image/png"), strings.Contains(t, "image/jpeg"), strings.Contains(t, "image/bmp"):
		return Image, true
	}
	return 0, false
}

func (b *xclipBackend) readString(targets ...string) (string, bool, error) {
	for _, target := range targets {
		data, ok, err := b.read(target)
		if err != nil {
			return "", false, err
		}
		if ok {
			return strings.ToValidUTF8(string(data), ""), true, nil
		}
	}
	return "", false, nil
}

func (b *xclipBackend) Text() (string, bool, error) { return b.readString(targetUTF8, targetText) }
func (b *xclipBackend) HTML() (string, bool, error) { return b.readString(targetHTML) }
func (b *xclipBackend) RTF() (string, bool, error)  { return b.readString(targetRTF) }

func (b *xclipBackend) Image() ([]byte, bool, error) {
	data, ok, err := b.read(targetPNG)
	if err != nil || ok {
		return data, ok, err
	}
	for _, target := range xclipImageTargets {
		data, ok, err := b.read(target)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		png := imagecodec.PNGOrRaw(b.codec, data)
		if !imagecodec.IsPNG(png) {
			b.log.Debug("xclip image left untranscoded", "target", target, "size_bytes", len(data))
		}
		return png, true, nil
	}
	return nil, false, nil
}

func (b *xclipBackend) SetText(text string) error {
	return b.write(targetUTF8, []byte(text))
}

func (b *xclipBackend) SetHTML(html, fallback string) error {
	return b.setRich(targetHTML, html, fallback)
}

func (b *xclipBackend) SetRTF(rtf, fallback string) error {
	return b.setRich(targetRTF, rtf, fallback)
}

// setRich writes the fallback before the rich target. Each xclip process
// owns the selection for a single target, so the last write is the one
// readers see; the rich representation is the one kept.
func (b *xclipBackend) setRich(target, rich, fallback string) error {
	if fallback != "" {
		if err := b.write(targetUTF8, []byte(fallback)); err != nil {
			return err
		}
	}
	return b.write(target, []byte(rich))
}

func (b *xclipBackend) SetImage(png []byte) error {
	return b.write(targetPNG, png)
}
