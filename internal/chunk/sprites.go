package chunk

import (
	"fmt"
	"image"

	"github.com/jchantrell/winextract/internal/cursor"
)

// Sprite is one entry of the SPRT chunk
type Sprite struct {
	Name         string
	Width        int32
	Height       int32
	MarginLeft   int32
	MarginRight  int32
	MarginBottom int32
	MarginTop    int32
	Reserved1    [3]uint32
	BBoxMode     uint32
	SepMasks     uint32
	OriginX      uint32
	OriginY      uint32
	Reserved2    [7]uint32

	// FrameAddrs point at atlas geometry records; 0 marks a frame with no pixels.
	FrameAddrs []int32
	Frames     Lazy[[]image.Image]
}

// Sprites is the decoded SPRT chunk
type Sprites = Named[Sprite]

type spriteRecord struct {
	Name         int32
	Width        int32
	Height       int32
	MarginLeft   int32
	MarginRight  int32
	MarginBottom int32
	MarginTop    int32
	Reserved1    [3]uint32
	BBoxMode     uint32
	SepMasks     uint32
	OriginX      uint32
	OriginY      uint32
	Reserved2    [7]uint32
}

// DecodeSprites decodes the SPRT chunk at the cursor position. Frames are
// left unresolved.
func DecodeSprites(c *cursor.Cursor) (*Sprites, error) {
	s := &Sprites{}
	err := decodeTable(c, TagSprites, func(int) error {
		var rec spriteRecord
		if err := c.Struct(&rec); err != nil {
			return err
		}

		name, err := c.StringAt(int64(rec.Name))
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}

		frames, err := readAddressTable(c)
		if err != nil {
			return fmt.Errorf("%s: reading frames: %w", name, err)
		}

		s.add(name, &Sprite{
			Name:         name,
			Width:        rec.Width,
			Height:       rec.Height,
			MarginLeft:   rec.MarginLeft,
			MarginRight:  rec.MarginRight,
			MarginBottom: rec.MarginBottom,
			MarginTop:    rec.MarginTop,
			Reserved1:    rec.Reserved1,
			BBoxMode:     rec.BBoxMode,
			SepMasks:     rec.SepMasks,
			OriginX:      rec.OriginX,
			OriginY:      rec.OriginY,
			Reserved2:    rec.Reserved2,
			FrameAddrs:   frames,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
