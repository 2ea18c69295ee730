package imagecodec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FileHeaderSize is the size of BITMAPFILEHEADER.
const FileHeaderSize = 14

const (
	coreHeaderSize = 12 // BITMAPCOREHEADER
	infoHeaderSize = 40 // BITMAPINFOHEADER

	biBitfields      = 3
	biAlphaBitfields = 6
)

var errNotBMP = errors.New("not a bmp file")

// WrapDIB prepends a BITMAPFILEHEADER to a packed DIB (info header, optional
// colour table or masks, pixels). The pixel-data offset accounts for the
// header size, the palette and, for plain BITMAPINFOHEADERs, trailing
// channel masks.
func WrapDIB(dib []byte) ([]byte, error) {
	off, err := pixelOffset(dib)
	if err != nil {
		return nil, err
	}
	out := make([]byte, FileHeaderSize+len(dib))
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:], uint32(FileHeaderSize+off))
	copy(out[FileHeaderSize:], dib)
	return out, nil
}

// StripFileHeader returns the DIB inside a BMP file.
func StripFileHeader(file []byte) ([]byte, error) {
	if len(file) <= FileHeaderSize || file[0] != 'B' || file[1] != 'M' {
		return nil, errNotBMP
	}
	return file[FileHeaderSize:], nil
}

// pixelOffset returns the offset of the pixel array from the start of dib.
func pixelOffset(dib []byte) (int, error) {
	if len(dib) < 4 {
		return 0, fmt.Errorf("dib too short: %d bytes", len(dib))
	}
	size := int(binary.LittleEndian.Uint32(dib))
	if size < coreHeaderSize || size > len(dib) {
		return 0, fmt.Errorf("dib header size %d out of range", size)
	}

	if size == coreHeaderSize {
		bits := binary.LittleEndian.Uint16(dib[10:])
		if bits <= 8 {
			return size + (1<<bits)*3, nil
		}
		return size, nil
	}

	if size < infoHeaderSize {
		return 0, fmt.Errorf("unsupported dib header size %d", size)
	}
	bits := binary.LittleEndian.Uint16(dib[14:])
	compression := binary.LittleEndian.Uint32(dib[16:])
	used := int(binary.LittleEndian.Uint32(dib[32:]))

	off := size
	switch {
	case used > 0:
		off += used * 4
	case bits > 0 && bits <= 8:
		off += (1 << bits) * 4
	}
	if size == infoHeaderSize {
		switch compression {
		case biBitfields:
			off += 12
		case biAlphaBitfields:
			off += 16
		}
	}
	if off > len(dib) {
		return 0, fmt.Errorf("dib pixel offset %d beyond %d bytes", off, len(dib))
	}
	return off, nil
}
