package archive

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/winextract/internal/testutil"
)

// pageChunk writes a TXTR chunk holding one PNG page per image
func pageChunk(b *testutil.Builder, pages ...image.Image) {
	labels := make([]string, len(pages))
	for i := range pages {
		labels[i] = "page" + string(rune('0'+i))
	}
	b.Begin("TXTR").Table(labels...)
	for i := range pages {
		b.PageRecord(labels[i], labels[i]+"/png")
	}
	for i, p := range pages {
		b.Mark(labels[i] + "/png").Raw(testutil.EncodePNG(p))
	}
	b.End()
}

func open(t *testing.T, data []byte, opts ...Option) *Archive {
	t.Helper()
	a, err := Open(data, nil, opts...)
	require.NoError(t, err)
	return a
}

// assertRegion checks that got equals the w×h region of src starting at at
func assertRegion(t *testing.T, src image.Image, at image.Point, got image.Image) {
	t.Helper()
	require.Equal(t, 0, got.Bounds().Min.X)
	require.Equal(t, 0, got.Bounds().Min.Y)
	for y := 0; y < got.Bounds().Dy(); y++ {
		for x := 0; x < got.Bounds().Dx(); x++ {
			want := color.NRGBAModel.Convert(src.At(at.X+x, at.Y+y))
			have := color.NRGBAModel.Convert(got.At(x, y))
			if !assert.Equal(t, want, have, "pixel %d,%d", x, y) {
				return
			}
		}
	}
}
