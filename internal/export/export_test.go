package export

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/winextract/internal/archive"
	"github.com/jchantrell/winextract/internal/codec"
	"github.com/jchantrell/winextract/internal/testutil"
)

func buildArchive(t *testing.T) *archive.Archive {
	t.Helper()

	page := testutil.Pattern(16, 16)
	b := testutil.NewBuilder()
	b.Begin("TXTR").Table("p0").PageRecord("p0", "png").Mark("png").Raw(testutil.EncodePNG(page)).End()

	b.Begin("SPRT").Table("s0").SpriteRecord("s0", "spr_Hero", "tp_hero0", "tp_hero1").End()
	b.Begin("FONT").Table("f0").FontRecord("f0", "fnt_ui", "tp_font",
		testutil.GlyphSpec{Char: 'A', Width: 2, Height: 2},
	).End()
	b.Begin("BGND").Table("b0").BackgroundRecord("b0", "bg_tiles", "tp_bg", 2, 2, 2, 0, 1, 2, 3).End()
	b.Begin("SOND").Table("snd0", "snd1", "snd2")
	b.SoundRecord("snd0", "snd_jump", "snd_jump.wav", 0, 0)
	b.SoundRecord("snd1", "mus_theme", "mus_theme.ogg", 0, -1)
	b.SoundRecord("snd2", "snd_blip", "", 0, 1)
	b.End()
	b.Begin("AUDO").Table("a0", "a1")
	b.Mark("a0").U32(4).Raw([]byte("RIFF"))
	b.Mark("a1").U32(4).Raw([]byte("OggS"))
	b.End()

	b.Begin("TPAG").Table("tp_hero0", "tp_hero1", "tp_font", "tp_bg")
	b.AtlasRecord("tp_hero0", 0, 0, 4, 4, 0)
	b.AtlasRecord("tp_hero1", 4, 0, 4, 4, 0)
	b.AtlasRecord("tp_font", 8, 0, 4, 4, 0)
	b.AtlasRecord("tp_bg", 0, 8, 8, 8, 0)
	b.End()

	a, err := archive.Open(b.Bytes(), nil)
	require.NoError(t, err)
	require.NoError(t, a.DecodeAll())
	require.NoError(t, a.ResolvePages())
	require.NoError(t, a.ResolveSprites())
	require.NoError(t, a.ResolveFonts())
	require.NoError(t, a.ResolveBackgrounds(nil))
	require.NoError(t, a.ResolveSounds())
	return a
}

func TestExportAll(t *testing.T) {
	t.Parallel()

	a := buildArchive(t)
	out := t.TempDir()
	soundDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(soundDir, "mus_theme.ogg"), []byte("OggS-external"), 0o644))

	e := NewExporter(a, codec.New(), out)
	e.SoundDir = soundDir

	var total Stats
	calls := 0
	progress := func(cur, n int, desc string) { calls++ }

	for _, fn := range []func(ProgressCallback) (Stats, error){
		e.ExportPages, e.ExportSprites, e.ExportFonts, e.ExportBackgrounds, e.ExportSounds,
	} {
		s, err := fn(progress)
		require.NoError(t, err)
		total.add(s)
	}

	for _, rel := range []string{
		"pages/page_000.png",
		"sprites/spr_hero/spr_hero_0.png",
		"sprites/spr_hero/spr_hero_1.png",
		"fonts/fnt_ui/sheet.png",
		"fonts/fnt_ui/glyph_00065.png",
		"backgrounds/bg_tiles.png",
		"tiles/bg_tiles/tile_0000.png",
		"tiles/bg_tiles/tile_0003.png",
		"sounds/snd_jump.wav",
		"sounds/mus_theme.ogg",
		"sounds/snd_blip.ogg",
	} {
		assert.FileExists(t, filepath.Join(out, rel))
	}

	data, err := os.ReadFile(filepath.Join(out, "sounds", "mus_theme.ogg"))
	require.NoError(t, err)
	assert.Equal(t, "OggS-external", string(data))

	f, err := os.ReadFile(filepath.Join(out, "sprites", "spr_hero", "spr_hero_1.png"))
	require.NoError(t, err)
	img, err := codec.New().Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	assert.Equal(t, 13, total.Files)
	assert.Zero(t, total.Skipped)
	assert.Positive(t, total.Bytes)
	assert.Equal(t, 7, calls)
}

func TestExportSkipsExternalWithoutDir(t *testing.T) {
	t.Parallel()

	a := buildArchive(t)
	out := t.TempDir()
	e := NewExporter(a, nil, out)

	s, err := e.ExportSounds(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.Skipped)
	assert.NoFileExists(t, filepath.Join(out, "sounds", "mus_theme.ogg"))
}

func TestExportSkipsEmptyFrames(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder()
	b.Begin("TXTR").Table("p0").PageRecord("p0", "png").Mark("png").Raw(testutil.EncodePNG(testutil.Pattern(4, 4))).End()
	b.Begin("SPRT").Table("s0", "s1")
	b.SpriteRecord("s0", "spr_empty", "tp_empty")
	b.SpriteRecord("s1", "spr_ok", "tp_ok")
	b.End()
	b.Begin("TPAG").Table("tp_empty", "tp_ok")
	b.AtlasRecord("tp_empty", 0, 0, 0, 0, 0)
	b.AtlasRecord("tp_ok", 0, 0, 2, 2, 0)
	b.End()

	a, err := archive.Open(b.Bytes(), nil)
	require.NoError(t, err)
	require.NoError(t, a.DecodeAll())
	require.NoError(t, a.ResolvePages())
	require.NoError(t, a.ResolveSprites())

	out := t.TempDir()
	s, err := NewExporter(a, nil, out).ExportSprites(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Files)
	assert.Equal(t, 1, s.Skipped)
	assert.NoFileExists(t, filepath.Join(out, "sprites", "spr_empty", "spr_empty_0.png"))
	assert.FileExists(t, filepath.Join(out, "sprites", "spr_ok", "spr_ok_0.png"))
}

func TestExportUnresolved(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder()
	b.Begin("TXTR").Table("p0").PageRecord("p0", "png").Mark("png").Raw(testutil.EncodePNG(testutil.Pattern(2, 2))).End()
	a, err := archive.Open(b.Bytes(), nil)
	require.NoError(t, err)
	_, err = a.DecodePages()
	require.NoError(t, err)

	e := NewExporter(a, nil, t.TempDir())
	s, err := e.ExportPages(nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 1}, s)

	s, err = e.ExportSprites(nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, s, "undecoded chunks are skipped")
}

func TestAudioExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".wav", audioExt("x.WAV", nil))
	assert.Equal(t, ".ogg", audioExt("", []byte("OggS....")))
	assert.Equal(t, ".wav", audioExt("", []byte("RIFF....")))
	assert.Equal(t, ".mp3", audioExt("", []byte{0xff, 0xfb, 0x90}))
	assert.Equal(t, ".mp3", audioExt("", []byte("ID3\x03")))
	assert.Equal(t, ".bin", audioExt("weird.$$", []byte{1, 2}))
}
