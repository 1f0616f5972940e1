// Package testutil builds synthetic FORM archives for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
)

// Builder assembles a FORM archive in memory. Pointers are written as
// placeholders referring to labels and patched by Bytes.
type Builder struct {
	buf     []byte
	open    int
	marks   map[string]int
	fixups  map[int]string
	strings []string
	inStrs  map[string]bool
}

// NewBuilder starts an archive with the FORM header
func NewBuilder() *Builder {
	return NewBuilderWithRoot("FORM")
}

// NewBuilderWithRoot starts an archive whose root tag is root
func NewBuilderWithRoot(root string) *Builder {
	b := &Builder{
		open:   -1,
		marks:  make(map[string]int),
		fixups: make(map[int]string),
		inStrs: make(map[string]bool),
	}
	b.buf = append(b.buf, root[:4]...)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, 0)
	return b
}

// Pos returns the absolute offset of the next byte written
func (b *Builder) Pos() int {
	return len(b.buf)
}

// Begin opens a chunk
func (b *Builder) Begin(tag string) *Builder {
	if b.open >= 0 {
		panic("testutil: chunk already open")
	}
	b.buf = append(b.buf, tag[:4]...)
	b.open = len(b.buf)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, 0)
	return b
}

// End closes the open chunk and patches its length
func (b *Builder) End() *Builder {
	if b.open < 0 {
		panic("testutil: no chunk open")
	}
	binary.LittleEndian.PutUint32(b.buf[b.open:], uint32(len(b.buf)-b.open-4))
	b.open = -1
	return b
}

// Mark binds label to the current position
func (b *Builder) Mark(label string) *Builder {
	if _, dup := b.marks[label]; dup {
		panic("testutil: duplicate label " + label)
	}
	b.marks[label] = len(b.buf)
	return b
}

// Ptr writes a 32-bit pointer to label; an empty label writes a null pointer
func (b *Builder) Ptr(label string) *Builder {
	if label == "" {
		return b.I32(0)
	}
	b.fixups[len(b.buf)] = label
	return b.I32(0)
}

// Str writes a pointer to s, stored in a trailing STRG chunk
func (b *Builder) Str(s string) *Builder {
	if !b.inStrs[s] {
		b.inStrs[s] = true
		b.strings = append(b.strings, s)
	}
	return b.Ptr("str:" + s)
}

// Table writes an address table pointing at labels
func (b *Builder) Table(labels ...string) *Builder {
	b.I32(int32(len(labels)))
	for _, l := range labels {
		b.Ptr(l)
	}
	return b
}

func (b *Builder) U8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

func (b *Builder) U16(v ...uint16) *Builder {
	for _, x := range v {
		b.buf = binary.LittleEndian.AppendUint16(b.buf, x)
	}
	return b
}

func (b *Builder) U32(v ...uint32) *Builder {
	for _, x := range v {
		b.buf = binary.LittleEndian.AppendUint32(b.buf, x)
	}
	return b
}

func (b *Builder) I32(v ...int32) *Builder {
	for _, x := range v {
		b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(x))
	}
	return b
}

func (b *Builder) U64(v uint64) *Builder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

func (b *Builder) F32(v float32) *Builder {
	return b.U32(math.Float32bits(v))
}

// Raw appends bytes verbatim
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Zero appends n zero bytes
func (b *Builder) Zero(n int) *Builder {
	b.buf = append(b.buf, make([]byte, n)...)
	return b
}

// AtlasEntry writes an 11-field geometry record
func (b *Builder) AtlasEntry(x, y, w, h, page uint16) *Builder {
	return b.U16(x, y, w, h, 0, 0, 0, 0, w, h, page)
}

// Bytes emits pending strings, patches every pointer and the FORM length
func (b *Builder) Bytes() []byte {
	if b.open >= 0 {
		panic("testutil: chunk left open")
	}
	if len(b.strings) > 0 {
		b.Begin("STRG")
		for _, s := range b.strings {
			b.Mark("str:" + s)
			b.buf = append(b.buf, s...)
			b.buf = append(b.buf, 0)
		}
		b.End()
		b.strings = nil
	}
	for at, label := range b.fixups {
		off, ok := b.marks[label]
		if !ok {
			panic(fmt.Sprintf("testutil: unresolved label %q", label))
		}
		binary.LittleEndian.PutUint32(b.buf[at:], uint32(off))
	}
	binary.LittleEndian.PutUint32(b.buf[4:], uint32(len(b.buf)-8))
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// AudioGroup builds a standalone audio-group file holding blobs
func AudioGroup(blobs ...[]byte) []byte {
	b := NewBuilder().Begin("AUDO")
	labels := make([]string, len(blobs))
	for i := range blobs {
		labels[i] = fmt.Sprintf("blob%d", i)
	}
	b.Table(labels...)
	for i, blob := range blobs {
		b.Mark(labels[i]).U32(uint32(len(blob))).Raw(blob)
	}
	return b.End().Bytes()
}

// Pattern returns a w×h NRGBA image whose pixels encode their coordinates
func Pattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8(x + y), A: 255})
		}
	}
	return img
}

// EncodePNG encodes img as PNG, panicking on failure
func EncodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
