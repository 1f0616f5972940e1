package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/winextract/internal/cursor"
	"github.com/jchantrell/winextract/internal/testutil"
)

// open returns a cursor positioned at tag's payload
func open(t *testing.T, data []byte, tag Tag) *cursor.Cursor {
	t.Helper()
	c := cursor.New(data)
	dir, err := ReadDirectory(c)
	require.NoError(t, err)
	require.NoError(t, dir.Seek(c, tag))
	return c
}

func TestDecodeGeneral(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilder().GeneralChunk("game", "Test Game", 7, 8, 9).Bytes()
	g, err := DecodeGeneral(open(t, data, TagGeneral))
	require.NoError(t, err)

	assert.Equal(t, uint8(1), g.Debug)
	assert.Equal(t, int32(-2), g.Reserved1)
	assert.Equal(t, "game.win", g.Filename)
	assert.Equal(t, "Default", g.Config)
	assert.Equal(t, uint32(42), g.GameID)
	assert.Equal(t, "game", g.Name)
	assert.Equal(t, "2.3.7.606", g.Version())
	assert.Equal(t, int32(640), g.DefaultWindowWidth)
	assert.Equal(t, uint32(0xdeadbeef), g.LicenseCRC32)
	assert.Equal(t, uint64(1700000000), g.Timestamp)
	assert.Equal(t, "Test Game", g.DisplayName)
	assert.Equal(t, uint32(391540), g.SteamAppID)
	assert.Equal(t, []uint32{7, 8, 9}, g.Numbers)
}

func TestDecodeGeneralTruncated(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilder().Begin("GEN8").Zero(10).End().Bytes()
	_, err := DecodeGeneral(open(t, data, TagGeneral))
	require.ErrorIs(t, err, ErrTruncated)

	var rerr *RecordError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, TagGeneral, rerr.Tag)
}

func TestDecodeOptions(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("OPTN")
	b.U32(0, 0).U32(0xff).Zero(48)
	b.Table("c0", "c1")
	b.Mark("c0").Str("@@SleepMargin").Str("10")
	b.Mark("c1").Str("@@DrawColour").Str("")
	data := b.End().Bytes()

	o, err := DecodeOptions(open(t, data, TagOptions))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff), o.Info)
	assert.Equal(t, []Constant{
		{Name: "@@SleepMargin", Value: "10"},
		{Name: "@@DrawColour", Value: ""},
	}, o.Constants)

	v, ok := o.Lookup("@@SleepMargin")
	assert.True(t, ok)
	assert.Equal(t, "10", v)
}

func TestDecodeSounds(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("SOND")
	b.Table("s0", "s1")
	b.SoundRecord("s0", "snd_jump", "snd_jump.ogg", 0, 3)
	b.SoundRecord("s1", "mus_theme", "mus_theme.ogg", 1, -1)
	data := b.End().Bytes()

	s, err := DecodeSounds(open(t, data, TagSounds))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	jump, ok := s.Get("snd_jump")
	require.True(t, ok)
	assert.Equal(t, ".ogg", jump.Type)
	assert.Equal(t, "snd_jump.ogg", jump.File)
	assert.Equal(t, int32(3), jump.AudioID)
	assert.False(t, jump.Audio.Resolved())
	assert.False(t, jump.External())

	theme, ok := s.Get("mus_theme")
	require.True(t, ok)
	assert.True(t, theme.External())
	assert.Equal(t, "mus_theme", s.All()[1].Name)
}

func TestDecodeAudio(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("AUDO")
	b.Table("a0", "a1")
	b.Mark("a0").U32(3).Raw([]byte{1, 2, 3})
	b.Mark("a1").U32(0)
	data := b.End().Bytes()

	bank, err := DecodeAudio(open(t, data, TagAudio))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1, 2, 3}, {}}, bank.Blobs)
}

func TestDecodeAudioOverrun(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("AUDO")
	b.Table("a0")
	b.Mark("a0").U32(1000).Raw([]byte{1})
	data := b.End().Bytes()

	_, err := DecodeAudio(open(t, data, TagAudio))
	require.ErrorIs(t, err, ErrTruncated)

	var rerr *RecordError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "#0", rerr.Record)
}

func TestDecodeAudioGroup(t *testing.T) {
	t.Parallel()

	data := testutil.AudioGroup([]byte("abc"), []byte("de"))
	bank, err := DecodeAudioGroup(cursor.New(data))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("abc"), []byte("de")}, bank.Blobs)

	_, err = DecodeAudioGroup(cursor.New([]byte("RIFF\x00\x00\x00\x00")))
	require.ErrorIs(t, err, ErrFormat)
}

func TestDecodeSprites(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("SPRT")
	b.Table("spr0")
	b.SpriteRecord("spr0", "spr_player", "tp0", "", "tp1")
	b.AtlasRecord("tp0", 0, 0, 2, 2, 0)
	b.AtlasRecord("tp1", 2, 0, 2, 2, 0)
	data := b.End().Bytes()

	s, err := DecodeSprites(open(t, data, TagSprites))
	require.NoError(t, err)

	spr, ok := s.Get("spr_player")
	require.True(t, ok)
	assert.Equal(t, int32(16), spr.Width)
	assert.Equal(t, int32(15), spr.MarginRight)
	assert.Equal(t, uint32(8), spr.OriginX)
	require.Len(t, spr.FrameAddrs, 3)
	assert.NotZero(t, spr.FrameAddrs[0])
	assert.Zero(t, spr.FrameAddrs[1])
	assert.False(t, spr.Frames.Resolved())
}

func TestDecodeAtlas(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("TPAG")
	b.Table("t0", "t1")
	b.AtlasRecord("t0", 1, 2, 3, 4, 0)
	b.AtlasRecord("t1", 5, 6, 7, 8, 2)
	data := b.End().Bytes()

	a, err := DecodeAtlas(open(t, data, TagAtlas))
	require.NoError(t, err)
	require.Len(t, a.Entries, 2)
	assert.Equal(t, AtlasEntry{X: 5, Y: 6, Width: 7, Height: 8, BoundingWidth: 7, BoundingHeight: 8, Page: 2}, a.Entries[1])
	assert.Equal(t, 3, a.Entries[0].Rect().Dx())
	assert.Equal(t, 4, a.Entries[0].Rect().Dy())

}

func TestDecodeAtlasEntry(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilder().AtlasEntry(1, 2, 3, 4, 5).Bytes()
	c := cursor.New(data)
	require.NoError(t, c.Seek(8))

	e, err := DecodeAtlasEntry(c)
	require.NoError(t, err)
	assert.Equal(t, AtlasEntry{X: 1, Y: 2, Width: 3, Height: 4, BoundingWidth: 3, BoundingHeight: 4, Page: 5}, e)
	assert.Equal(t, int64(30), c.Pos())

	_, err = DecodeAtlasEntry(c)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodePages(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("TXTR")
	b.Table("p0")
	b.PageRecord("p0", "img0")
	b.Mark("img0").Raw([]byte{0x89, 'P', 'N', 'G'})
	data := b.End().Bytes()

	p, err := DecodePages(open(t, data, TagPages))
	require.NoError(t, err)
	require.Len(t, p.Pages, 1)
	assert.Equal(t, uint32(1), p.Pages[0].Reserved1)
	assert.NotZero(t, p.Pages[0].ImageAddr)
	assert.False(t, p.Pages[0].Image.Resolved())
}

func TestDecodeFonts(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("FONT")
	b.Table("f0")
	b.FontRecord("f0", "fnt_main", "tp0",
		testutil.GlyphSpec{Char: 'A', X: 0, Y: 0, Width: 4, Height: 6},
		testutil.GlyphSpec{Char: ' ', X: 4, Y: 0, Width: 0, Height: 0},
	)
	b.AtlasRecord("tp0", 0, 0, 8, 8, 0)
	data := b.End().Bytes()

	fs, err := DecodeFonts(open(t, data, TagFonts))
	require.NoError(t, err)

	f, ok := fs.Get("fnt_main")
	require.True(t, ok)
	assert.Equal(t, "Arial", f.SystemName)
	assert.Equal(t, float32(12), f.EmSize, "em size is stored negated")
	assert.True(t, f.Bold)
	assert.False(t, f.Italic)
	assert.Equal(t, uint16(32), f.RangeStart)
	assert.Equal(t, uint32(127), f.RangeEnd)
	require.Len(t, f.Glyphs, 2)

	g, i, ok := f.Glyph(' ')
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, 1, g.Rect().Dx(), "zero width widened")
	assert.Equal(t, 1, g.Rect().Dy())
}

func TestDecodeBackgrounds(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("BGND")
	b.Table("b0")
	b.BackgroundRecord("b0", "bg_tiles", "", 16, 16, 3, 0, 1, 2, 3, 4)
	data := b.End().Bytes()

	bs, err := DecodeBackgrounds(open(t, data, TagBackgrounds))
	require.NoError(t, err)

	bg, ok := bs.Get("bg_tiles")
	require.True(t, ok)
	assert.Equal(t, int32(0), bg.TextureAddr)
	assert.Equal(t, uint32(16), bg.TileWidth)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, bg.TileIDs)
	assert.Equal(t, 2, bg.Rows())
	assert.Equal(t, [][]uint32{{0, 1, 2}, {3, 4}}, bg.Grid())

	bg.Columns = 5
	assert.Equal(t, [][]uint32{{0, 1, 2, 3, 4}}, bg.Grid())
}

func TestDecodeNegativeCount(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilder().Begin("SPRT").I32(-1).End().Bytes()
	_, err := DecodeSprites(open(t, data, TagSprites))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeOversizedCount(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilder().Begin("TXTR").I32(1 << 29).End().Bytes()
	_, err := DecodePages(open(t, data, TagPages))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeBadStringEncoding(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder().Begin("SOND")
	b.Table("s0")
	b.Mark("s0").Ptr("bad").Zero(32)
	b.Mark("bad").Raw([]byte{0xff, 0xfe, 0})
	data := b.End().Bytes()

	_, err := DecodeSounds(open(t, data, TagSounds))
	require.ErrorIs(t, err, ErrEncoding)
}

func TestLazySetOnce(t *testing.T) {
	t.Parallel()

	var l Lazy[int]
	_, ok := l.Get()
	assert.False(t, ok)

	l.Set(1)
	l.Set(2)
	v, ok := l.Get()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
