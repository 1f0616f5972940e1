package export

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/jchantrell/winextract/internal/chunk"
)

// Tile is one cell cut out of a background texture
type Tile struct {
	Index int
	Rect  image.Rectangle
	Image image.Image
}

// TileRect returns the rectangle of tile n in a tileset texture. Tiles are
// laid out row-major over the background's column count, each surrounded by
// its margin on every side.
func TileRect(b *chunk.Background, n int) image.Rectangle {
	cols := int(b.Columns)
	strideX := int(b.TileWidth) + 2*int(b.MarginX)
	strideY := int(b.TileHeight) + 2*int(b.MarginY)
	x := (n%cols)*strideX + int(b.MarginX)
	y := (n/cols)*strideY + int(b.MarginY)
	return image.Rect(x, y, x+int(b.TileWidth), y+int(b.TileHeight))
}

// SplitTiles cuts a background texture into its tiles. Backgrounds without
// a tile size or column count are not tilesets and yield nothing; tiles that
// fall outside the texture are dropped. The work is bounded by the cells the
// texture can hold, whatever TileCount claims.
func SplitTiles(tex image.Image, b *chunk.Background) []Tile {
	if b.Columns == 0 || b.TileWidth == 0 || b.TileHeight == 0 || b.TileCount == 0 {
		return nil
	}

	bounds := tex.Bounds()
	cols := int64(b.Columns)
	count := int64(b.TileCount)
	fitX := min(cellsFit(bounds.Dx(), b.TileWidth, b.MarginX), cols)
	fitY := cellsFit(bounds.Dy(), b.TileHeight, b.MarginY)
	if fitX == 0 || fitY == 0 {
		return nil
	}

	tiles := make([]Tile, 0, min(fitX*fitY, count))
	for row := int64(0); row < fitY && row*cols < count; row++ {
		for col := int64(0); col < fitX; col++ {
			n := row*cols + col
			if n >= count {
				break
			}

			r := TileRect(b, int(n))
			dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
			xdraw.Draw(dst, dst.Bounds(), tex, r.Min.Add(bounds.Min), xdraw.Src)
			tiles = append(tiles, Tile{Index: int(n), Rect: r, Image: dst})
		}
	}
	return tiles
}

// cellsFit returns how many tiles of the given size, each padded by margin
// on both sides, fit along an edge of length size
func cellsFit(size int, tile, margin uint32) int64 {
	need := int64(tile) + int64(margin)
	if int64(size) < need {
		return 0
	}
	stride := int64(tile) + 2*int64(margin)
	return (int64(size)-need)/stride + 1
}
