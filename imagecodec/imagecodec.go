// Package imagecodec converts clipboard images between the native raster
// formats platforms hand out and the PNG bytes the clip package exposes.
//
// Conversion is an enhancement, never a contract: the helpers in this package
// treat a nil Codec as "no codec installed" and return the input unchanged,
// and they swallow codec failures the same way.
package imagecodec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Codec transcodes raster images.
type Codec interface {
	// ToPNG decodes src in any supported raster format and re-encodes it as PNG.
	ToPNG(src []byte) ([]byte, error)

	// ToBMP decodes a PNG and encodes it as a BMP file, file header included.
	ToBMP(png []byte) ([]byte, error)
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool { return bytes.HasPrefix(data, pngMagic) }

type stdCodec struct{}

// Default returns a Codec backed by the standard image decoders plus
// golang.org/x/image for BMP and TIFF.
func Default() Codec { return stdCodec{} }

func (stdCodec) ToPNG(src []byte) ([]byte, error) {
	if IsPNG(src) {
		return src, nil
	}
	img, kind, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s as png: %w", kind, err)
	}
	return buf.Bytes(), nil
}

func (stdCodec) ToBMP(src []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}

// PNGOrRaw returns data transcoded to PNG, or data itself when c is nil or
// the conversion fails.
func PNGOrRaw(c Codec, data []byte) []byte {
	if c == nil || len(data) == 0 {
		return data
	}
	out, err := c.ToPNG(data)
	if err != nil || len(out) == 0 {
		return data
	}
	return out
}

// DIBFromPNG returns a device-independent bitmap (a BMP without its file
// header) for png, or nil when c is nil or any step fails.
func DIBFromPNG(c Codec, png []byte) []byte {
	if c == nil {
		return nil
	}
	file, err := c.ToBMP(png)
	if err != nil {
		return nil
	}
	dib, err := StripFileHeader(file)
	if err != nil {
		return nil
	}
	return dib
}

// PNGFromDIB prefixes dib with a bitmap file header and transcodes the result
// to PNG. When no conversion is possible the raw DIB bytes are returned.
func PNGFromDIB(c Codec, dib []byte) []byte {
	if c == nil {
		return dib
	}
	file, err := WrapDIB(dib)
	if err != nil {
		return dib
	}
	out, err := c.ToPNG(file)
	if err != nil || len(out) == 0 {
		return dib
	}
	return out
}
