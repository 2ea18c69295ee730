//go:build windows

package clip

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"go.klb.dev/xclipboard/imagecodec"
	"go.klb.dev/xclipboard/internal/wincf"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard            = user32.NewProc("OpenClipboard")
	procCloseClipboard           = user32.NewProc("CloseClipboard")
	procEmptyClipboard           = user32.NewProc("EmptyClipboard")
	procEnumClipboardFormats     = user32.NewProc("EnumClipboardFormats")
	procGetClipboardData         = user32.NewProc("GetClipboardData")
	procSetClipboardData         = user32.NewProc("SetClipboardData")
	procRegisterClipboardFormatW = user32.NewProc("RegisterClipboardFormatW")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")
)

const gmemMoveable = 0x0002

// win32Backend holds no clipboard handle between calls: every operation
// opens the clipboard, does its work and closes it again.
type win32Backend struct {
	reg   win32Registered
	codec imagecodec.Codec
	log   *slog.Logger
}

func newWin32Backend(cfg *config) (Backend, error) {
	for _, dll := range []*windows.LazyDLL{user32, kernel32} {
		if err := dll.Load(); err != nil {
			return nil, accessErr("load "+dll.Name, err)
		}
	}
	var (
		reg win32Registered
		err error
	)
	if reg.html, err = registerFormat(win32HTMLFormat); err != nil {
		return nil, err
	}
	if reg.rtf, err = registerFormat(win32RTFFormat); err != nil {
		return nil, err
	}
	if reg.png, err = registerFormat(win32PNGFormat); err != nil {
		return nil, err
	}
	return &win32Backend{reg: reg, codec: cfg.codec, log: cfg.logger()}, nil
}

func registerFormat(name string) (uint32, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, accessErr("register format "+name, err)
	}
	id, _, callErr := procRegisterClipboardFormatW.Call(uintptr(unsafe.Pointer(p)))
	if id == 0 {
		return 0, accessErr("register format "+name, callErr)
	}
	return uint32(id), nil
}

func (b *win32Backend) Name() string { return "Windows clipboard" }

// withClipboard runs fn with the clipboard open and closes it on every exit
// path. The clipboard is a system-wide lock, so opening is retried.
func (b *win32Backend) withClipboard(op string, fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := openClipboard(); err != nil {
		return accessErr(op, err)
	}
	defer procCloseClipboard.Call()
	return fn()
}

func openClipboard() error {
	var lastErr error
	for attempt := 1; ; attempt++ {
		r, _, err := procOpenClipboard.Call(0)
		if r != 0 {
			return nil
		}
		lastErr = err
		if attempt == win32OpenAttempts {
			return fmt.Errorf("open clipboard: %d attempts: %w", attempt, lastErr)
		}
		time.Sleep(win32OpenBackoff)
	}
}

func emptyClipboard() error {
	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return accessErr("empty clipboard", err)
	}
	return nil
}

// getData copies the global memory behind format id. It must run inside
// withClipboard.
func getData(id uint32) ([]byte, bool) {
	h, _, _ := procGetClipboardData.Call(uintptr(id))
	if h == 0 {
		return nil, false
	}
	ptr, _, _ := procGlobalLock.Call(h)
	if ptr == 0 {
		return nil, false
	}
	defer procGlobalUnlock.Call(h)

	size, _, _ := procGlobalSize.Call(h)
	if size == 0 {
		return nil, false
	}
	return bytes.Clone(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)), true
}

// setData hands data to the clipboard as format id. Ownership of the global
// memory passes to the system only when SetClipboardData succeeds; every
// earlier failure frees it. It must run inside withClipboard.
func setData(id uint32, data []byte) error {
	if len(data) == 0 {
		return accessErr("set clipboard data", errors.New("empty payload"))
	}
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if h == 0 {
		return accessErr("allocate global memory", err)
	}
	ptr, _, err := procGlobalLock.Call(h)
	if ptr == 0 {
		procGlobalFree.Call(h)
		return accessErr("lock global memory", err)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(data)), data)
	procGlobalUnlock.Call(h)

	if r, _, err := procSetClipboardData.Call(uintptr(id), h); r == 0 {
		procGlobalFree.Call(h)
		return accessErr("set clipboard data", err)
	}
	return nil
}

func (b *win32Backend) Clear() error {
	return b.withClipboard("clear", emptyClipboard)
}

func (b *win32Backend) AvailableFormats() ([]Format, error) {
	var ids []uint32
	err := b.withClipboard("enumerate formats", func() error {
		var id uintptr
		for {
			next, _, _ := procEnumClipboardFormats.Call(id)
			if next == 0 {
				return nil
			}
			ids = append(ids, uint32(next))
			id = next
		}
	})
	if err != nil {
		return nil, err
	}
	return win32Formats(ids, b.reg), nil
}

func (b *win32Backend) read(op string, id uint32) ([]byte, bool, error) {
	var (
		data []byte
		ok   bool
	)
	err := b.withClipboard(op, func() error {
		data, ok = getData(id)
		return nil
	})
	return data, ok, err
}

func (b *win32Backend) Text() (string, bool, error) {
	data, ok, err := b.read("read text", cfUnicodeText)
	if err != nil || !ok {
		return "", false, err
	}
	s, err := wincf.DecodeText(data)
	if err != nil {
		return "", false, accessErr("read text", err)
	}
	return s, true, nil
}

func (b *win32Backend) HTML() (string, bool, error) {
	data, ok, err := b.read("read html", b.reg.html)
	if err != nil || !ok {
		return "", false, err
	}
	return strings.ToValidUTF8(wincf.DecodeHTML(data), ""), true, nil
}

func (b *win32Backend) RTF() (string, bool, error) {
	data, ok, err := b.read("read rtf", b.reg.rtf)
	if err != nil || !ok {
		return "", false, err
	}
	return strings.ToValidUTF8(string(wincf.TrimNUL(data)), ""), true, nil
}

func (b *win32Backend) Image() ([]byte, bool, error) {
	var (
		data []byte
		ok   bool
	)
	err := b.withClipboard("read image", func() error {
		if data, ok = getData(b.reg.png); ok {
			return nil
		}
		dib, found := getData(cfDIBV5)
		if !found {
			dib, found = getData(cfDIB)
		}
		if found {
			data, ok = imagecodec.PNGFromDIB(b.codec, dib), true
		}
		return nil
	})
	if err != nil || !ok {
		return nil, false, err
	}
	return data, true, nil
}

func (b *win32Backend) SetText(text string) error {
	buf, err := wincf.EncodeText(text)
	if err != nil {
		return accessErr("write text", err)
	}
	return b.withClipboard("write text", func() error {
		if err := emptyClipboard(); err != nil {
			return err
		}
		return setData(cfUnicodeText, buf)
	})
}

func (b *win32Backend) SetHTML(html, fallback string) error {
	return b.setRich("write html", b.reg.html, wincf.EncodeHTML(html), fallback)
}

func (b *win32Backend) SetRTF(rtf, fallback string) error {
	return b.setRich("write rtf", b.reg.rtf, wincf.NulTerminated(rtf), fallback)
}

func (b *win32Backend) setRich(op string, id uint32, payload []byte, fallback string) error {
	var text []byte
	if fallback != "" {
		var err error
		if text, err = wincf.EncodeText(fallback); err != nil {
			return accessErr(op, err)
		}
	}
	return b.withClipboard(op, func() error {
		if err := emptyClipboard(); err != nil {
			return err
		}
		if err := setData(id, payload); err != nil {
			return err
		}
		if text != nil {
			return setData(cfUnicodeText, text)
		}
		return nil
	})
}

// SetImage stores the registered PNG format and, when the codec can produce
// one, a CF_DIB copy for programs that only read bitmaps. A failed DIB is
// skipped.
func (b *win32Backend) SetImage(png []byte) error {
	dib := imagecodec.DIBFromPNG(b.codec, png)
	return b.withClipboard("write image", func() error {
		if err := emptyClipboard(); err != nil {
			return err
		}
		if err := setData(b.reg.png, png); err != nil {
			return err
		}
		if dib == nil {
			return nil
		}
		if err := setData(cfDIB, dib); err != nil {
			b.log.Debug("skipping CF_DIB copy", "err", err)
		}
		return nil
	})
}
