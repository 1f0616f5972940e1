package archive

import (
	"fmt"
	"image"

	"github.com/jchantrell/winextract/internal/chunk"
)

// ResolveFont crops a font's sheet and each of its glyphs
func (a *Archive) ResolveFont(name string) (*chunk.Font, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fonts == nil {
		return nil, fmt.Errorf("%w: fonts not decoded", ErrNotLoaded)
	}
	f, ok := a.fonts.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: font %q", ErrUnknownAsset, name)
	}
	if err := a.resolveFont(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ResolveFonts resolves every font in table order
func (a *Archive) ResolveFonts() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fonts == nil {
		return fmt.Errorf("%w: fonts not decoded", ErrNotLoaded)
	}
	all := a.fonts.All()
	return a.forEach(len(all), func(i int) error {
		return a.resolveFont(all[i])
	})
}

func (a *Archive) resolveFont(f *chunk.Font) error {
	if f.Raster.Resolved() {
		return nil
	}
	if f.TextureAddr == 0 {
		a.logger.Debug("font has no texture", "font", f.Name)
		f.Raster.Set(chunk.FontRaster{})
		return nil
	}

	sheet, _, err := a.region(int64(f.TextureAddr))
	if err != nil {
		return fmt.Errorf("font %s: %w", f.Name, err)
	}

	glyphs := make([]image.Image, len(f.Glyphs))
	for i, g := range f.Glyphs {
		glyphs[i] = crop(sheet, g.Rect())
	}

	f.Raster.Set(chunk.FontRaster{Sheet: sheet, Glyphs: glyphs})
	return nil
}
