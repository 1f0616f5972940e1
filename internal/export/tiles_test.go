package export

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/testutil"
)

func TestTileRect(t *testing.T) {
	t.Parallel()

	b := &chunk.Background{TileWidth: 4, TileHeight: 3, MarginX: 1, MarginY: 2, Columns: 3}
	assert.Equal(t, image.Rect(1, 2, 5, 5), TileRect(b, 0))
	assert.Equal(t, image.Rect(7, 2, 11, 5), TileRect(b, 1))
	assert.Equal(t, image.Rect(1, 9, 5, 12), TileRect(b, 3))
}

func TestSplitTiles(t *testing.T) {
	t.Parallel()

	tex := testutil.Pattern(8, 4)
	b := &chunk.Background{TileWidth: 2, TileHeight: 2, Columns: 4, TileCount: 10}

	tiles := SplitTiles(tex, b)
	require.Len(t, tiles, 8, "tiles past the texture are dropped")
	assert.Equal(t, 5, tiles[5].Index)
	assert.Equal(t, image.Rect(2, 2, 4, 4), tiles[5].Rect)

	got := color.NRGBAModel.Convert(tiles[5].Image.At(1, 1))
	assert.Equal(t, tex.NRGBAAt(3, 3), got)
}

func TestSplitTilesColumnOverride(t *testing.T) {
	t.Parallel()

	tex := testutil.Pattern(8, 4)
	b := &chunk.Background{TileWidth: 2, TileHeight: 2, Columns: 2, TileCount: 4}
	tiles := SplitTiles(tex, b)
	require.Len(t, tiles, 4)
	assert.Equal(t, image.Rect(0, 2, 2, 4), tiles[2].Rect)

	b.Columns = 4
	tiles = SplitTiles(tex, b)
	require.Len(t, tiles, 4)
	assert.Equal(t, image.Rect(4, 0, 6, 2), tiles[2].Rect)
}

func TestSplitTilesNotTileset(t *testing.T) {
	t.Parallel()

	assert.Nil(t, SplitTiles(testutil.Pattern(4, 4), &chunk.Background{Columns: 1}))
}

func TestSplitTilesBoundedByTexture(t *testing.T) {
	t.Parallel()

	tex := testutil.Pattern(2, 2)
	b := &chunk.Background{TileWidth: 1, TileHeight: 1, Columns: 2, TileCount: math.MaxUint32}

	tiles := SplitTiles(tex, b)
	require.Len(t, tiles, 4)
	assert.Equal(t, 3, tiles[3].Index)
	assert.Equal(t, image.Rect(1, 1, 2, 2), tiles[3].Rect)
	assert.Equal(t, 4, cap(tiles))

	b.Columns = math.MaxUint32
	tiles = SplitTiles(tex, b)
	require.Len(t, tiles, 2, "only the first row fits")
	assert.Equal(t, 1, tiles[1].Index)
}

func TestSplitTilesWithMargins(t *testing.T) {
	t.Parallel()

	// 2x2 tiles with a 1px margin use a 4px stride
	tex := testutil.Pattern(8, 5)
	b := &chunk.Background{TileWidth: 2, TileHeight: 2, MarginX: 1, MarginY: 1, Columns: 3, TileCount: 6}

	tiles := SplitTiles(tex, b)
	require.Len(t, tiles, 2, "one row of two columns fits")
	assert.Equal(t, image.Rect(5, 1, 7, 3), tiles[1].Rect)

	assert.Nil(t, SplitTiles(testutil.Pattern(2, 2), b), "texture smaller than one tile")
}
