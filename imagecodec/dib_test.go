package imagecodec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// infoHeader builds a packed DIB with a BITMAPINFOHEADER-style header of the
// given size, followed by extra bytes of palette, masks and pixels.
func infoHeader(size int, bits uint16, compression, used uint32, extra int) []byte {
	dib := make([]byte, size+extra)
	binary.LittleEndian.PutUint32(dib[0:], uint32(size))
	binary.LittleEndian.PutUint32(dib[4:], 2)
	binary.LittleEndian.PutUint32(dib[8:], 2)
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], bits)
	binary.LittleEndian.PutUint32(dib[16:], compression)
	binary.LittleEndian.PutUint32(dib[32:], used)
	return dib
}

func coreHeader(bits uint16, extra int) []byte {
	dib := make([]byte, coreHeaderSize+extra)
	binary.LittleEndian.PutUint32(dib[0:], coreHeaderSize)
	binary.LittleEndian.PutUint16(dib[10:], bits)
	return dib
}

func TestPixelOffset(t *testing.T) {
	tests := []struct {
		name string
		dib  []byte
		want int
	}{
		{"24bpp info", infoHeader(40, 24, 0, 0, 16), 40},
		{"32bpp info", infoHeader(40, 32, 0, 0, 16), 40},
		{"32bpp bitfields", infoHeader(40, 32, biBitfields, 0, 28), 52},
		{"32bpp alpha bitfields", infoHeader(40, 32, biAlphaBitfields, 0, 32), 56},
		{"8bpp full palette", infoHeader(40, 8, 0, 0, 1024+4), 40 + 1024},
		{"8bpp short palette", infoHeader(40, 8, 0, 16, 64+4), 40 + 64},
		{"1bpp", infoHeader(40, 1, 0, 0, 8+4), 48},
		{"v5 masks inside header", infoHeader(124, 32, biBitfields, 0, 16), 124},
		{"v4", infoHeader(108, 32, 0, 0, 16), 108},
		{"core 24bpp", coreHeader(24, 12), 12},
		{"core 8bpp", coreHeader(8, 768+4), 12 + 768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pixelOffset(tt.dib)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPixelOffsetErrors(t *testing.T) {
	tests := map[string][]byte{
		"too short":        {1, 2},
		"size zero":        make([]byte, 40),
		"size beyond data": infoHeader(40, 24, 0, 0, 0)[:20],
		"odd header size":  infoHeader(20, 24, 0, 0, 40),
		"palette overrun":  infoHeader(40, 8, 0, 0, 10),
	}
	for name, dib := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := pixelOffset(dib)
			assert.Error(t, err)
		})
	}
}

func TestWrapDIB(t *testing.T) {
	dib := infoHeader(40, 24, 0, 0, 16)
	file, err := WrapDIB(dib)
	require.NoError(t, err)

	assert.Equal(t, []byte("BM"), file[:2])
	assert.Equal(t, uint32(len(dib)+FileHeaderSize), binary.LittleEndian.Uint32(file[2:]))
	assert.Equal(t, uint32(0x36), binary.LittleEndian.Uint32(file[10:]))
	assert.Equal(t, dib, file[FileHeaderSize:])

	back, err := StripFileHeader(file)
	require.NoError(t, err)
	assert.Equal(t, dib, back)
}

func TestStripFileHeaderRejects(t *testing.T) {
	_, err := StripFileHeader([]byte("BM"))
	assert.Error(t, err)
	_, err = StripFileHeader(append([]byte("XX"), make([]byte, 40)...))
	assert.Error(t, err)
}
