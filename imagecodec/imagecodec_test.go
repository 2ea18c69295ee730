package imagecodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) ([]byte, *image.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.RGBA{
		{0xff, 0, 0, 0xff}, {0, 0xff, 0, 0xff}, {0, 0, 0xff, 0xff},
		{0x10, 0x20, 0x30, 0xff}, {0xff, 0xff, 0xff, 0xff}, {0, 0, 0, 0xff},
	}
	for i, c := range colors {
		img.SetRGBA(i%3, i/3, c)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes(), img
}

func TestIsPNG(t *testing.T) {
	data, _ := testPNG(t)
	assert.True(t, IsPNG(data))
	assert.False(t, IsPNG([]byte("BM")))
	assert.False(t, IsPNG(nil))
}

func TestDIBRoundTrip(t *testing.T) {
	data, want := testPNG(t)
	c := Default()

	dib := DIBFromPNG(c, data)
	require.NotNil(t, dib)
	assert.NotEqual(t, byte('B'), dib[0], "file header must be stripped")

	out := PNGFromDIB(c, dib)
	require.True(t, IsPNG(out))

	got, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			wr, wg, wb, wa := want.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel %d,%d", x, y)
		}
	}
}

func TestToPNGPassesPNGThrough(t *testing.T) {
	data, _ := testPNG(t)
	out, err := Default().ToPNG(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestNilCodecPassthrough(t *testing.T) {
	raw := []byte("not an image")
	assert.Equal(t, raw, PNGOrRaw(nil, raw))
	assert.Equal(t, raw, PNGFromDIB(nil, raw))
	assert.Nil(t, DIBFromPNG(nil, raw))
}

type failingCodec struct{}

func (failingCodec) ToPNG([]byte) ([]byte, error) { return nil, errors.New("boom") }
func (failingCodec) ToBMP([]byte) ([]byte, error) { return nil, errors.New("boom") }

func TestCodecFailuresAreSwallowed(t *testing.T) {
	raw := []byte("raw bytes")
	assert.Equal(t, raw, PNGOrRaw(failingCodec{}, raw))
	assert.Nil(t, DIBFromPNG(failingCodec{}, raw))

	dib := infoHeader(40, 24, 0, 0, 16)
	assert.Equal(t, dib, PNGFromDIB(failingCodec{}, dib))
	assert.Equal(t, raw, PNGFromDIB(Default(), raw), "malformed DIB")
	assert.Equal(t, raw, PNGOrRaw(Default(), raw), "undecodable input")
}
