//go:build darwin

package clip

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"

	"go.klb.dev/xclipboard/imagecodec"
)

var (
	appKitOnce sync.Once
	appKitErr  error

	selAlloc                 objc.SEL
	selInit                  objc.SEL
	selRelease               objc.SEL
	selGeneralPasteboard     objc.SEL
	selClearContents         objc.SEL
	selDeclareTypesOwner     objc.SEL
	selTypes                 objc.SEL
	selDataForType           objc.SEL
	selStringForType         objc.SEL
	selSetDataForType        objc.SEL
	selSetStringForType      objc.SEL
	selCount                 objc.SEL
	selObjectAtIndex         objc.SEL
	selArrayWithObjectsCount objc.SEL
	selStringWithUTF8String  objc.SEL
	selUTF8String            objc.SEL
	selDataWithBytesLength   objc.SEL
	selBytes                 objc.SEL
	selLength                objc.SEL
)

// loadAppKit loads the Objective-C runtime and AppKit once per process. It
// fails in environments without the GUI frameworks.
func loadAppKit() error {
	appKitOnce.Do(func() {
		if _, err := purego.Dlopen("/usr/lib/libobjc.A.dylib", purego.RTLD_GLOBAL); err != nil {
			appKitErr = err
			return
		}
		if _, err := purego.Dlopen("/System/Library/Frameworks/AppKit.framework/AppKit", purego.RTLD_GLOBAL); err != nil {
			appKitErr = err
			return
		}
		if objc.GetClass("NSPasteboard") == 0 {
			appKitErr = errors.New("NSPasteboard class not registered")
			return
		}

		selAlloc = objc.RegisterName("alloc")
		selInit = objc.RegisterName("init")
		selRelease = objc.RegisterName("release")
		selGeneralPasteboard = objc.RegisterName("generalPasteboard")
		selClearContents = objc.RegisterName("clearContents")
		selDeclareTypesOwner = objc.RegisterName("declareTypes:owner:")
		selTypes = objc.RegisterName("types")
		selDataForType = objc.RegisterName("dataForType:")
		selStringForType = objc.RegisterName("stringForType:")
		selSetDataForType = objc.RegisterName("setData:forType:")
		selSetStringForType = objc.RegisterName("setString:forType:")
		selCount = objc.RegisterName("count")
		selObjectAtIndex = objc.RegisterName("objectAtIndex:")
		selArrayWithObjectsCount = objc.RegisterName("arrayWithObjects:count:")
		selStringWithUTF8String = objc.RegisterName("stringWithUTF8String:")
		selUTF8String = objc.RegisterName("UTF8String")
		selDataWithBytesLength = objc.RegisterName("dataWithBytes:length:")
		selBytes = objc.RegisterName("bytes")
		selLength = objc.RegisterName("length")
	})
	return appKitErr
}

// pasteboardBackend holds the general pasteboard for the life of the
// process.
type pasteboardBackend struct {
	pb    objc.ID
	codec imagecodec.Codec
	log   *slog.Logger
}

func newPasteboardBackend(cfg *config) (Backend, error) {
	if err := loadAppKit(); err != nil {
		return nil, accessErr("load AppKit", err)
	}
	pb := objc.ID(objc.GetClass("NSPasteboard")).Send(selGeneralPasteboard)
	if pb == 0 {
		return nil, accessErr("general pasteboard", errors.New("generalPasteboard returned nil"))
	}
	return &pasteboardBackend{pb: pb, codec: cfg.codec, log: cfg.logger()}, nil
}

func (b *pasteboardBackend) Name() string { return "macOS NSPasteboard" }

// withPool runs fn on a locked OS thread inside an autorelease pool so the
// temporary objects created by each call are released.
func (b *pasteboardBackend) withPool(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc).Send(selInit)
	if pool != 0 {
		defer pool.Send(selRelease)
	}
	return fn()
}

func nsString(s string) objc.ID {
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8String, s+"\x00")
}

func goString(str objc.ID) string {
	if str == 0 {
		return ""
	}
	p := objc.Send[unsafe.Pointer](str, selUTF8String)
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

func nsData(data []byte) objc.ID {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	d := objc.ID(objc.GetClass("NSData")).Send(selDataWithBytesLength, p, uint(len(data)))
	runtime.KeepAlive(data)
	return d
}

func goBytes(data objc.ID) []byte {
	n := objc.Send[uint](data, selLength)
	if n == 0 {
		return []byte{}
	}
	p := objc.Send[unsafe.Pointer](data, selBytes)
	if p == nil {
		return []byte{}
	}
	return bytes.Clone(unsafe.Slice((*byte)(p), n))
}

func nsArray(strs []string) objc.ID {
	ids := make([]objc.ID, len(strs))
	for i, s := range strs {
		ids[i] = nsString(s)
	}
	var p unsafe.Pointer
	if len(ids) > 0 {
		p = unsafe.Pointer(&ids[0])
	}
	arr := objc.ID(objc.GetClass("NSArray")).Send(selArrayWithObjectsCount, p, uint(len(ids)))
	runtime.KeepAlive(ids)
	return arr
}

func (b *pasteboardBackend) Clear() error {
	return b.withPool(func() error {
		b.pb.Send(selClearContents)
		return nil
	})
}

func (b *pasteboardBackend) AvailableFormats() ([]Format, error) {
	var types []string
	err := b.withPool(func() error {
		arr := b.pb.Send(selTypes)
		if arr == 0 {
			return nil
		}
		n := objc.Send[uint](arr, selCount)
		for i := uint(0); i < n; i++ {
			types = append(types, goString(objc.Send[objc.ID](arr, selObjectAtIndex, i)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pasteboardFormats(types), nil
}

func (b *pasteboardBackend) data(uti string) ([]byte, bool) {
	var (
		out []byte
		ok  bool
	)
	_ = b.withPool(func() error {
		d := objc.Send[objc.ID](b.pb, selDataForType, nsString(uti))
		if d != 0 {
			out, ok = goBytes(d), true
		}
		return nil
	})
	return out, ok
}

func (b *pasteboardBackend) Text() (string, bool, error) {
	var (
		s  string
		ok bool
	)
	err := b.withPool(func() error {
		str := objc.Send[objc.ID](b.pb, selStringForType, nsString(pbTypeString))
		if str != 0 {
			s, ok = goString(str), true
		}
		return nil
	})
	return s, ok, err
}

func (b *pasteboardBackend) HTML() (string, bool, error) {
	data, ok := b.data(pbTypeHTML)
	if !ok {
		return "", false, nil
	}
	return string(bytes.ToValidUTF8(data, nil)), true, nil
}

func (b *pasteboardBackend) RTF() (string, bool, error) {
	data, ok := b.data(pbTypeRTF)
	if !ok {
		return "", false, nil
	}
	return string(bytes.ToValidUTF8(data, nil)), true, nil
}

func (b *pasteboardBackend) Image() ([]byte, bool, error) {
	if data, ok := b.data(pbTypePNG); ok {
		return data, true, nil
	}
	tiff, ok := b.data(pbTypeTIFF)
	if !ok {
		return nil, false, nil
	}
	png := imagecodec.PNGOrRaw(b.codec, tiff)
	if !imagecodec.IsPNG(png) {
		b.log.Debug("pasteboard TIFF left untranscoded", "size_bytes", len(tiff))
	}
	return png, true, nil
}

// replace clears the pasteboard, declares the types of items and then
// writes each item.
func (b *pasteboardBackend) replace(items []pbItem) error {
	return b.withPool(func() error {
		b.pb.Send(selClearContents)
		b.pb.Send(selDeclareTypesOwner, nsArray(declaredTypes(items)), objc.ID(0))
		for _, it := range items {
			var ok bool
			if it.isText {
				ok = objc.Send[bool](b.pb, selSetStringForType, nsString(it.text), nsString(it.uti))
			} else {
				ok = objc.Send[bool](b.pb, selSetDataForType, nsData(it.data), nsString(it.uti))
			}
			if !ok {
				return accessErr("write "+it.uti, errors.New("pasteboard rejected data"))
			}
		}
		return nil
	})
}

func (b *pasteboardBackend) SetText(text string) error {
	return b.replace([]pbItem{textItem(pbTypeString, text)})
}

func (b *pasteboardBackend) SetHTML(html, fallback string) error {
	return b.replace(richItems(pbTypeHTML, html, fallback))
}

func (b *pasteboardBackend) SetRTF(rtf, fallback string) error {
	return b.replace(richItems(pbTypeRTF, rtf, fallback))
}

func (b *pasteboardBackend) SetImage(png []byte) error {
	return b.replace([]pbItem{dataItem(pbTypePNG, png)})
}
