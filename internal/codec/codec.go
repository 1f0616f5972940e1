// Package codec turns embedded image bytes into rasters and rasters into PNG.
package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrCodec wraps every failure reported by an image decoder or encoder.
var ErrCodec = errors.New("image codec failure")

// Codec decodes images with format auto-detection and encodes them as PNG.
// Decode receives the bytes from the image start to the end of the
// containing buffer and must ignore anything after the image.
type Codec interface {
	Decode(data []byte) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
}

// Standard is the Codec backed by the image package registry. PNG, GIF,
// JPEG, BMP, TIFF and WebP are recognized from their magic bytes.
type Standard struct {
	// Compression is the PNG compression level used by Encode
	Compression png.CompressionLevel
}

// New returns a Standard codec using the default PNG compression
func New() *Standard {
	return &Standard{Compression: png.DefaultCompression}
}

// Decode decodes any registered image format. Trailing bytes after the
// image are ignored; an image with empty bounds is rejected with ErrCodec.
func (s *Standard) Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %d bytes: %v", ErrCodec, len(data), err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrCodec, format)
	}
	return img, nil
}

// Encode writes img as PNG at the configured compression level
func (s *Standard) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: s.Compression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("%w: encoding png: %v", ErrCodec, err)
	}
	return nil
}

// EncodeBytes encodes img as PNG into a new byte slice
func EncodeBytes(c Codec, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
