package archive

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// crop copies r, given relative to src's top-left corner, into a new image
// whose bounds start at the origin. The part of r outside src is dropped.
func crop(src image.Image, r image.Rectangle) image.Image {
	b := src.Bounds()
	r = r.Add(b.Min).Intersect(b)
	size := image.Rect(0, 0, r.Dx(), r.Dy())

	switch s := src.(type) {
	case *image.NRGBA:
		dst := image.NewNRGBA(size)
		copyRows(dst.Pix, dst.Stride, s.Pix, s.Stride, s.PixOffset(r.Min.X, r.Min.Y), r.Dx()*4, r.Dy())
		return dst
	case *image.RGBA:
		dst := image.NewRGBA(size)
		copyRows(dst.Pix, dst.Stride, s.Pix, s.Stride, s.PixOffset(r.Min.X, r.Min.Y), r.Dx()*4, r.Dy())
		return dst
	}

	dst := image.NewRGBA(size)
	xdraw.Draw(dst, size, src, r.Min, xdraw.Src)
	return dst
}

func copyRows(dst []byte, dstStride int, src []byte, srcStride, srcOff, rowBytes, rows int) {
	if rowBytes == 0 {
		return
	}
	for y := 0; y < rows; y++ {
		copy(dst[y*dstStride:y*dstStride+rowBytes], src[srcOff+y*srcStride:srcOff+y*srcStride+rowBytes])
	}
}
