package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/winextract/internal/testutil"
)

func TestDecodePNGIgnoresTrailingBytes(t *testing.T) {
	t.Parallel()

	src := testutil.Pattern(3, 2)
	data := append(testutil.EncodePNG(src), []byte("STRG\x00\x00\x00\x00trailing")...)

	img, err := New().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := src.NRGBAAt(x, y)
			got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			assert.Equal(t, want, got, "pixel %d,%d", x, y)
		}
	}
}

func TestDecodeGIF(t *testing.T) {
	t.Parallel()

	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	pal.SetColorIndex(1, 1, 1)
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))

	img, err := New().Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestDecodeGarbage(t *testing.T) {
	t.Parallel()

	_, err := New().Decode([]byte("not an image"))
	require.ErrorIs(t, err, ErrCodec)

	_, err = New().Decode(nil)
	require.ErrorIs(t, err, ErrCodec)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()
	src := testutil.Pattern(5, 5)
	data, err := EncodeBytes(c, src)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

	img, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())
}
