package chunk

import (
	"fmt"
	"image"

	"github.com/jchantrell/winextract/internal/cursor"
)

// Glyph is one character cell of a font, positioned relative to the font's
// atlas region
type Glyph struct {
	Char     uint16
	X        uint16
	Y        uint16
	Width    uint16
	Height   uint16
	Reserved [4]byte
}

// Rect returns the glyph rectangle inside the font region. Zero sizes are
// widened to one pixel since some glyphs record none.
func (g Glyph) Rect() image.Rectangle {
	w, h := max(int(g.Width), 1), max(int(g.Height), 1)
	return image.Rect(int(g.X), int(g.Y), int(g.X)+w, int(g.Y)+h)
}

// FontRaster is the resolved pixel data of a font
type FontRaster struct {
	// Sheet is the font's whole atlas region; nil when the font has no texture.
	Sheet image.Image
	// Glyphs holds one image per Font.Glyphs entry, in the same order.
	Glyphs []image.Image
}

// Font is one entry of the FONT chunk
type Font struct {
	Name         string
	SystemName   string
	EmSize       float32
	Bold         bool
	Italic       bool
	RangeStart   uint16
	Charset      uint8
	Antialiasing uint8
	RangeEnd     uint32
	TextureAddr  uint32
	ScaleX       float32
	ScaleY       float32
	Reserved     int32
	Glyphs       []Glyph
	Raster       Lazy[FontRaster]
}

// Glyph returns the glyph for a character code and its position in Glyphs
func (f *Font) Glyph(char uint16) (Glyph, int, bool) {
	for i, g := range f.Glyphs {
		if g.Char == char {
			return g, i, true
		}
	}
	return Glyph{}, -1, false
}

// Fonts is the decoded FONT chunk
type Fonts = Named[Font]

type fontRecord struct {
	Name         int32
	SystemName   int32
	EmSize       float32
	Bold         uint32
	Italic       uint32
	RangeStart   uint16
	Charset      uint8
	Antialiasing uint8
	RangeEnd     uint32
	TextureAddr  uint32
	ScaleX       float32
	ScaleY       float32
	Reserved     int32
}

// DecodeFonts decodes the FONT chunk at the cursor position
func DecodeFonts(c *cursor.Cursor) (*Fonts, error) {
	fs := &Fonts{}
	err := decodeTable(c, TagFonts, func(int) error {
		var rec fontRecord
		if err := c.Struct(&rec); err != nil {
			return err
		}

		f := &Font{
			EmSize:       -rec.EmSize,
			Bold:         rec.Bold == 1,
			Italic:       rec.Italic == 1,
			RangeStart:   rec.RangeStart,
			Charset:      rec.Charset,
			Antialiasing: rec.Antialiasing,
			RangeEnd:     rec.RangeEnd,
			TextureAddr:  rec.TextureAddr,
			ScaleX:       rec.ScaleX,
			ScaleY:       rec.ScaleY,
			Reserved:     rec.Reserved,
		}

		var err error
		if f.Name, err = c.StringAt(int64(rec.Name)); err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		if f.SystemName, err = c.StringAt(int64(rec.SystemName)); err != nil {
			return fmt.Errorf("%s: reading system name: %w", f.Name, err)
		}

		glyphs, err := readAddressTable(c)
		if err != nil {
			return fmt.Errorf("%s: reading glyph table: %w", f.Name, err)
		}
		f.Glyphs = make([]Glyph, len(glyphs))
		for i, off := range glyphs {
			if err := c.Seek(int64(off)); err != nil {
				return fmt.Errorf("%s: glyph %d: %w", f.Name, i, err)
			}
			if err := c.Struct(&f.Glyphs[i]); err != nil {
				return fmt.Errorf("%s: glyph %d: %w", f.Name, i, err)
			}
		}

		fs.add(f.Name, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fs, nil
}
