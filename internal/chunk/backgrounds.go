package chunk

import (
	"fmt"
	"image"

	"github.com/jchantrell/winextract/internal/cursor"
)

// Background is one entry of the BGND chunk
type Background struct {
	Name         string
	Reserved1    [3]uint32
	TextureAddr  int32
	Reserved2    uint32
	TileWidth    uint32
	TileHeight   uint32
	MarginX      uint32
	MarginY      uint32
	Columns      uint32
	ItemsPerTile uint32
	TileCount    uint32
	Reserved3    [2]uint32
	TileIDs      []uint32
	Texture      Lazy[image.Image]
}

// Rows returns how many rows the tile ids fill at the current column count
func (b *Background) Rows() int {
	if b.Columns == 0 {
		return 0
	}
	cols := int(b.Columns)
	return (len(b.TileIDs) + cols - 1) / cols
}

// Grid lays the flat tile ids out row by row using the current column count.
// The last row may be short.
func (b *Background) Grid() [][]uint32 {
	if b.Columns == 0 {
		return nil
	}
	cols := int(b.Columns)
	grid := make([][]uint32, 0, b.Rows())
	for start := 0; start < len(b.TileIDs); start += cols {
		end := min(start+cols, len(b.TileIDs))
		grid = append(grid, b.TileIDs[start:end:end])
	}
	return grid
}

// Backgrounds is the decoded BGND chunk
type Backgrounds = Named[Background]

type backgroundRecord struct {
	Name         int32
	Reserved1    [3]uint32
	TextureAddr  int32
	Reserved2    uint32
	TileWidth    uint32
	TileHeight   uint32
	MarginX      uint32
	MarginY      uint32
	Columns      uint32
	ItemsPerTile uint32
	TileCount    uint32
	Reserved3    [2]uint32
}

// DecodeBackgrounds decodes the BGND chunk at the cursor position
func DecodeBackgrounds(c *cursor.Cursor) (*Backgrounds, error) {
	bs := &Backgrounds{}
	err := decodeTable(c, TagBackgrounds, func(int) error {
		var rec backgroundRecord
		if err := c.Struct(&rec); err != nil {
			return err
		}

		name, err := c.StringAt(int64(rec.Name))
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}

		ids, err := readU32s(c, uint64(rec.TileCount)*uint64(rec.ItemsPerTile))
		if err != nil {
			return fmt.Errorf("%s: reading tile ids: %w", name, err)
		}

		bs.add(name, &Background{
			Name:         name,
			Reserved1:    rec.Reserved1,
			TextureAddr:  rec.TextureAddr,
			Reserved2:    rec.Reserved2,
			TileWidth:    rec.TileWidth,
			TileHeight:   rec.TileHeight,
			MarginX:      rec.MarginX,
			MarginY:      rec.MarginY,
			Columns:      rec.Columns,
			ItemsPerTile: rec.ItemsPerTile,
			TileCount:    rec.TileCount,
			Reserved3:    rec.Reserved3,
			TileIDs:      ids,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}
