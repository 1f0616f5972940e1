package archive

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jchantrell/winextract/internal/testutil"
)

func TestCropNRGBA(t *testing.T) {
	t.Parallel()

	src := testutil.Pattern(10, 10)
	got := crop(src, image.Rect(2, 3, 6, 8))

	assert.IsType(t, &image.NRGBA{}, got)
	assert.Equal(t, image.Rect(0, 0, 4, 5), got.Bounds())
	assertRegion(t, src, image.Pt(2, 3), got)
}

func TestCropRGBA(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(3, 3, color.RGBA{R: 200, A: 255})
	got := crop(src, image.Rect(2, 2, 4, 4))

	assert.IsType(t, &image.RGBA{}, got)
	assert.Equal(t, color.RGBA{R: 200, A: 255}, got.At(1, 1))
}

func TestCropOtherModels(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 6, 6))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}
	got := crop(src, image.Rect(1, 1, 4, 3))

	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())
	assertRegion(t, src, image.Pt(1, 1), got)
}

func TestCropRelativeToBounds(t *testing.T) {
	t.Parallel()

	page := testutil.Pattern(8, 8)
	sub := page.SubImage(image.Rect(4, 4, 8, 8))
	got := crop(sub, image.Rect(1, 1, 3, 3))
	assertRegion(t, page, image.Pt(5, 5), got)
}

func TestCropClipsToSource(t *testing.T) {
	t.Parallel()

	src := testutil.Pattern(4, 4)
	got := crop(src, image.Rect(2, 2, 10, 10))
	assert.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())

	got = crop(src, image.Rect(20, 20, 22, 22))
	assert.True(t, got.Bounds().Empty())
}
