package testutil

import "fmt"

// GeneralChunk writes a complete GEN8 chunk
func (b *Builder) GeneralChunk(name, displayName string, numbers ...uint32) *Builder {
	b.Begin("GEN8")
	b.U8(1).Raw([]byte{0xfe, 0xff, 0xff})
	b.Str(name + ".win").Str("Default")
	b.U32(100010, 10000005, 42)
	b.U32(1, 2, 3, 4)
	b.Str(name)
	b.I32(2, 3, 7, 606)
	b.I32(640, 480)
	b.U32(0x1234)
	b.Zero(16)
	b.U32(0xdeadbeef)
	b.U64(1700000000)
	b.Str(displayName)
	b.U32(0x20)
	b.U32(0, 0, 0, 0)
	b.U32(391540)
	b.U32(uint32(len(numbers)))
	b.U32(numbers...)
	return b.End()
}

// PageRecord writes a TXTR record whose image starts at imageLabel
func (b *Builder) PageRecord(label, imageLabel string) *Builder {
	return b.Mark(label).U32(1, 0).Ptr(imageLabel)
}

// AtlasRecord writes a labelled geometry record
func (b *Builder) AtlasRecord(label string, x, y, w, h, page uint16) *Builder {
	return b.Mark(label).AtlasEntry(x, y, w, h, page)
}

// SpriteRecord writes a SPRT record; empty frame labels become null pointers
func (b *Builder) SpriteRecord(label, name string, frames ...string) *Builder {
	b.Mark(label).Str(name)
	b.I32(16, 16, 0, 15, 15, 0)
	b.U32(0, 0, 0)
	b.U32(0, 0, 8, 8)
	b.U32(0, 0, 0, 0, 0, 0, 0)
	return b.Table(frames...)
}

// SoundRecord writes a SOND record
func (b *Builder) SoundRecord(label, name, file string, group, audio int32) *Builder {
	b.Mark(label).Str(name).U32(0x64).Str(".ogg").Str(file).U32(0)
	return b.F32(1).F32(1).I32(group, audio)
}

// GlyphSpec describes one font glyph
type GlyphSpec struct {
	Char          uint16
	X, Y          uint16
	Width, Height uint16
}

// FontRecord writes a FONT record followed by its glyph records
func (b *Builder) FontRecord(label, name, texture string, glyphs ...GlyphSpec) *Builder {
	b.Mark(label).Str(name).Str("Arial")
	b.F32(-12).U32(1, 0)
	b.U16(32).U8(0).U8(1)
	b.U32(127)
	b.Ptr(texture)
	b.F32(1).F32(1).I32(0)

	labels := make([]string, len(glyphs))
	for i := range glyphs {
		labels[i] = fmt.Sprintf("%s/glyph%d", label, i)
	}
	b.Table(labels...)
	for i, g := range glyphs {
		b.Mark(labels[i]).U16(g.Char, g.X, g.Y, g.Width, g.Height).Zero(4)
	}
	return b
}

// BackgroundRecord writes a BGND record with one item per tile
func (b *Builder) BackgroundRecord(label, name, texture string, tileW, tileH, columns uint32, ids ...uint32) *Builder {
	b.Mark(label).Str(name).U32(0, 0, 0)
	b.Ptr(texture)
	b.U32(0)
	b.U32(tileW, tileH, 0, 0, columns)
	b.U32(1, uint32(len(ids)))
	b.U32(0, 0)
	return b.U32(ids...)
}
