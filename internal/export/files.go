package export

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/codec"
	"github.com/jchantrell/winextract/internal/utils"
)

// Source provides the decoded chunks to export. Chunks that were not
// decoded are returned as nil and skipped.
type Source interface {
	Pages() *chunk.Pages
	Sprites() *chunk.Sprites
	Fonts() *chunk.Fonts
	Backgrounds() *chunk.Backgrounds
	Sounds() *chunk.Sounds
}

// Exporter writes resolved assets to disk
type Exporter struct {
	source    Source
	codec     codec.Codec
	outputDir string

	// SoundDir is searched for the files of external sounds; empty skips them
	SoundDir string
}

// NewExporter creates a new asset exporter
func NewExporter(source Source, c codec.Codec, outputDir string) *Exporter {
	if c == nil {
		c = codec.New()
	}
	return &Exporter{
		source:    source,
		codec:     c,
		outputDir: outputDir,
	}
}

// ProgressCallback is called to report export progress
type ProgressCallback func(current int, total int, description string)

// Stats counts what an export pass wrote
type Stats struct {
	Files   int
	Skipped int
	Bytes   int64
}

func (s *Stats) add(o Stats) {
	s.Files += o.Files
	s.Skipped += o.Skipped
	s.Bytes += o.Bytes
}

// ExportPages writes every resolved texture page
func (e *Exporter) ExportPages(progressCallback ProgressCallback) (Stats, error) {
	var stats Stats
	pages := e.source.Pages()
	if pages == nil {
		return stats, nil
	}

	dir := filepath.Join(e.outputDir, "pages")
	for i, p := range pages.Pages {
		name := fmt.Sprintf("page_%03d", i)
		img, ok := p.Image.Get()
		if !ok {
			slog.Debug("Skipping unresolved page", "page", i)
			stats.Skipped++
			continue
		}

		if err := e.writeImage(&stats, filepath.Join(dir, name+".png"), img); err != nil {
			return stats, fmt.Errorf("exporting page %d: %w", i, err)
		}

		if progressCallback != nil {
			progressCallback(i+1, len(pages.Pages), name)
		}
	}

	return stats, nil
}

// ExportSprites writes each resolved sprite's frames to its own directory
func (e *Exporter) ExportSprites(progressCallback ProgressCallback) (Stats, error) {
	var stats Stats
	sprites := e.source.Sprites()
	if sprites == nil {
		return stats, nil
	}

	for i, s := range sprites.All() {
		name := assetName(s.Name, "sprite", i)
		frames, ok := s.Frames.Get()
		if !ok {
			slog.Debug("Skipping unresolved sprite", "sprite", s.Name)
			stats.Skipped++
			continue
		}

		dir := filepath.Join(e.outputDir, "sprites", name)
		for j, frame := range frames {
			if err := e.writeImage(&stats, filepath.Join(dir, fmt.Sprintf("%s_%d.png", name, j)), frame); err != nil {
				return stats, fmt.Errorf("exporting sprite %s frame %d: %w", s.Name, j, err)
			}
		}

		if progressCallback != nil {
			progressCallback(i+1, sprites.Len(), name)
		}
	}

	return stats, nil
}

// ExportFonts writes each font's sheet and one image per glyph, named by
// character code
func (e *Exporter) ExportFonts(progressCallback ProgressCallback) (Stats, error) {
	var stats Stats
	fonts := e.source.Fonts()
	if fonts == nil {
		return stats, nil
	}

	for i, f := range fonts.All() {
		name := assetName(f.Name, "font", i)
		raster, ok := f.Raster.Get()
		if !ok || raster.Sheet == nil {
			stats.Skipped++
			continue
		}

		dir := filepath.Join(e.outputDir, "fonts", name)
		if err := e.writeImage(&stats, filepath.Join(dir, "sheet.png"), raster.Sheet); err != nil {
			return stats, fmt.Errorf("exporting font %s: %w", f.Name, err)
		}

		for j, g := range raster.Glyphs {
			path := filepath.Join(dir, fmt.Sprintf("glyph_%05d.png", f.Glyphs[j].Char))
			if err := e.writeImage(&stats, path, g); err != nil {
				return stats, fmt.Errorf("exporting font %s glyph %d: %w", f.Name, f.Glyphs[j].Char, err)
			}
		}

		if progressCallback != nil {
			progressCallback(i+1, fonts.Len(), name)
		}
	}

	return stats, nil
}

// ExportBackgrounds writes each background texture and, for tilesets, one
// image per tile
func (e *Exporter) ExportBackgrounds(progressCallback ProgressCallback) (Stats, error) {
	var stats Stats
	bgs := e.source.Backgrounds()
	if bgs == nil {
		return stats, nil
	}

	for i, b := range bgs.All() {
		name := assetName(b.Name, "background", i)
		tex, ok := b.Texture.Get()
		if !ok || tex == nil {
			stats.Skipped++
			continue
		}

		if err := e.writeImage(&stats, filepath.Join(e.outputDir, "backgrounds", name+".png"), tex); err != nil {
			return stats, fmt.Errorf("exporting background %s: %w", b.Name, err)
		}

		tiles := SplitTiles(tex, b)
		for _, t := range tiles {
			path := filepath.Join(e.outputDir, "tiles", name, fmt.Sprintf("tile_%04d.png", t.Index))
			if err := e.writeImage(&stats, path, t.Image); err != nil {
				return stats, fmt.Errorf("exporting background %s tile %d: %w", b.Name, t.Index, err)
			}
		}
		if len(tiles) > 0 {
			slog.Debug("Split background into tiles", "background", b.Name, "tiles", len(tiles), "columns", b.Columns)
		}

		if progressCallback != nil {
			progressCallback(i+1, bgs.Len(), name)
		}
	}

	return stats, nil
}

// ExportSounds writes embedded audio and copies external audio files found
// in SoundDir
func (e *Exporter) ExportSounds(progressCallback ProgressCallback) (Stats, error) {
	var stats Stats
	sounds := e.source.Sounds()
	if sounds == nil {
		return stats, nil
	}

	dir := filepath.Join(e.outputDir, "sounds")
	for i, s := range sounds.All() {
		name := assetName(s.Name, "sound", i)
		audio, ok := s.Audio.Get()
		if !ok {
			stats.Skipped++
			continue
		}

		var data []byte
		switch audio.Kind {
		case chunk.AudioInternal:
			data = audio.Data
		case chunk.AudioExternal:
			if e.SoundDir == "" || s.File == "" {
				stats.Skipped++
				continue
			}
			var err error
			data, err = os.ReadFile(filepath.Join(e.SoundDir, filepath.Base(s.File)))
			if err != nil {
				slog.Warn("External sound file not found", "sound", s.Name, "file", s.File)
				stats.Skipped++
				continue
			}
		}

		path := filepath.Join(dir, name+audioExt(s.File, data))
		if err := writeFile(path, data); err != nil {
			return stats, fmt.Errorf("exporting sound %s: %w", s.Name, err)
		}
		stats.Files++
		stats.Bytes += int64(len(data))

		if progressCallback != nil {
			progressCallback(i+1, sounds.Len(), name)
		}
	}

	return stats, nil
}

// writeImage encodes img to path and counts it in stats. Images with empty
// bounds, such as zero-sized atlas entries, cannot be encoded and are
// counted as skipped.
func (e *Exporter) writeImage(stats *Stats, path string, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		slog.Debug("Skipping empty image", "path", path)
		stats.Skipped++
		return nil
	}

	data, err := codec.EncodeBytes(e.codec, img)
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	stats.Files++
	stats.Bytes += int64(len(data))
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// assetName returns a safe file name for an asset, falling back to its
// kind and position when the name has no usable characters
func assetName(name, kind string, index int) string {
	if safe := utils.SanitizeName(name); safe != "" {
		return safe
	}
	return fmt.Sprintf("%s_%d", kind, index)
}

// audioExt picks a file extension from the recorded file name, then from
// the payload's magic bytes
func audioExt(file string, data []byte) string {
	if ext := strings.ToLower(filepath.Ext(file)); len(ext) > 1 && utils.SanitizeName(ext[1:]) == ext[1:] {
		return ext
	}
	switch {
	case bytes.HasPrefix(data, []byte("RIFF")):
		return ".wav"
	case bytes.HasPrefix(data, []byte("OggS")):
		return ".ogg"
	case bytes.HasPrefix(data, []byte("ID3")), len(data) > 1 && data[0] == 0xff && data[1]&0xe0 == 0xe0:
		return ".mp3"
	}
	return ".bin"
}
