package database

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jchantrell/winextract/internal/chunk"
)

// Catalog records decoded archive metadata into the database. Write
// methods append rows; call Reset first to start from empty tables.
type Catalog struct {
	db       *Database
	inserter *BulkInserter
}

// NewCatalog wraps db with the catalog schema
func NewCatalog(db *Database, options *BulkInsertOptions) *Catalog {
	return &Catalog{db: db, inserter: NewBulkInserter(db, options)}
}

// Reset drops and recreates every catalog table
func (c *Catalog) Reset(ctx context.Context, progress SchemaProgressCallback) error {
	return NewDDLManager(c.db).CreateSchemas(ctx, Tables, progress)
}

func (c *Catalog) insert(ctx context.Context, schema *TableSchema, rows [][]any) error {
	return c.inserter.InsertTableData(ctx, &TableData{Schema: schema, Rows: rows})
}

// WriteGeneral writes the single GEN8 row
func (c *Catalog) WriteGeneral(ctx context.Context, g *chunk.General) error {
	numbers, err := jsonArray(g.Numbers)
	if err != nil {
		return err
	}
	return c.insert(ctx, &GeneralTable, [][]any{{
		g.Name, g.DisplayName, g.Filename, g.Config,
		g.Version(), g.GameID, g.Debug,
		g.DefaultWindowWidth, g.DefaultWindowHeight, g.Info,
		hex.EncodeToString(g.LicenseMD5[:]), g.LicenseCRC32, int64(g.Timestamp),
		g.ActiveTargets, g.SteamAppID, numbers,
	}})
}

// WriteOptions writes one row per OPTN constant
func (c *Catalog) WriteOptions(ctx context.Context, o *chunk.Options) error {
	rows := make([][]any, len(o.Constants))
	for i, k := range o.Constants {
		rows[i] = []any{i, k.Name, k.Value}
	}
	return c.insert(ctx, &OptionsTable, rows)
}

// WriteAtlas writes one row per atlas entry, keyed by table index
func (c *Catalog) WriteAtlas(ctx context.Context, a *chunk.Atlas) error {
	rows := make([][]any, len(a.Entries))
	for i, e := range a.Entries {
		rows[i] = []any{
			i, e.X, e.Y, e.Width, e.Height,
			e.RenderX, e.RenderY, e.BoundingX, e.BoundingY,
			e.BoundingWidth, e.BoundingHeight, e.Page,
		}
	}
	return c.insert(ctx, &AtlasTable, rows)
}

// WritePages records every page; image sizes are NULL for unresolved pages
func (c *Catalog) WritePages(ctx context.Context, p *chunk.Pages) error {
	rows := make([][]any, len(p.Pages))
	for i, page := range p.Pages {
		var w, h any
		if img, ok := page.Image.Get(); ok && img != nil {
			w, h = img.Bounds().Dx(), img.Bounds().Dy()
		}
		rows[i] = []any{i, page.ImageAddr, w, h}
	}
	return c.insert(ctx, &PagesTable, rows)
}

// WriteSprites writes one row per sprite with its frame count
func (c *Catalog) WriteSprites(ctx context.Context, s *chunk.Sprites) error {
	rows := make([][]any, 0, s.Len())
	for i, spr := range s.All() {
		rows = append(rows, []any{
			i, spr.Name, spr.Width, spr.Height,
			spr.MarginLeft, spr.MarginRight, spr.MarginBottom, spr.MarginTop,
			spr.BBoxMode, spr.SepMasks, spr.OriginX, spr.OriginY,
			len(spr.FrameAddrs),
		})
	}
	return c.insert(ctx, &SpritesTable, rows)
}

// WriteSounds records every sound; size is NULL until the sound is resolved
// and for external sounds
func (c *Catalog) WriteSounds(ctx context.Context, s *chunk.Sounds) error {
	rows := make([][]any, 0, s.Len())
	for i, snd := range s.All() {
		var size any
		if audio, ok := snd.Audio.Get(); ok && audio.Kind == chunk.AudioInternal {
			size = len(audio.Data)
		}
		rows = append(rows, []any{
			i, snd.Name, snd.Type, snd.File, snd.Flags,
			snd.Volume, snd.Pitch, snd.GroupID, snd.AudioID,
			snd.External(), size,
		})
	}
	return c.insert(ctx, &SoundsTable, rows)
}

// WriteFonts records every font and its glyphs
func (c *Catalog) WriteFonts(ctx context.Context, f *chunk.Fonts) error {
	fonts := make([][]any, 0, f.Len())
	var glyphs [][]any
	for i, font := range f.All() {
		fonts = append(fonts, []any{
			i, font.Name, font.SystemName, font.EmSize,
			font.Bold, font.Italic, font.RangeStart, font.RangeEnd,
			font.Charset, font.Antialiasing, font.ScaleX, font.ScaleY,
			len(font.Glyphs),
		})
		for j, g := range font.Glyphs {
			glyphs = append(glyphs, []any{font.Name, j, g.Char, g.X, g.Y, g.Width, g.Height})
		}
	}

	if err := c.insert(ctx, &FontsTable, fonts); err != nil {
		return err
	}
	return c.insert(ctx, &GlyphsTable, glyphs)
}

// WriteBackgrounds records every background using its current column count
func (c *Catalog) WriteBackgrounds(ctx context.Context, b *chunk.Backgrounds) error {
	rows := make([][]any, 0, b.Len())
	for i, bg := range b.All() {
		ids, err := jsonArray(bg.TileIDs)
		if err != nil {
			return err
		}
		rows = append(rows, []any{
			i, bg.Name, bg.TileWidth, bg.TileHeight,
			bg.MarginX, bg.MarginY, bg.Columns, bg.Rows(),
			bg.ItemsPerTile, bg.TileCount, ids,
		})
	}
	return c.insert(ctx, &BackgroundsTable, rows)
}

func jsonArray(v []uint32) (string, error) {
	if v == nil {
		v = []uint32{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializing array value to JSON: %w", err)
	}
	return string(b), nil
}
