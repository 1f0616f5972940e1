package archive

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/chunk"
)

// ResolveBackground crops one background's texture
func (a *Archive) ResolveBackground(name string) (*chunk.Background, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backgrounds == nil {
		return nil, fmt.Errorf("%w: backgrounds not decoded", ErrNotLoaded)
	}
	b, ok := a.backgrounds.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: background %q", ErrUnknownAsset, name)
	}
	if err := a.resolveBackground(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ResolveBackgrounds applies column overrides and resolves every background
// in table order. overrides may be nil.
func (a *Archive) ResolveBackgrounds(overrides map[string]int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backgrounds == nil {
		return fmt.Errorf("%w: backgrounds not decoded", ErrNotLoaded)
	}
	if err := a.setBackgroundColumns(overrides); err != nil {
		return err
	}
	all := a.backgrounds.All()
	return a.forEach(len(all), func(i int) error {
		return a.resolveBackground(all[i])
	})
}

// SetBackgroundColumns replaces the recorded column count of the named
// backgrounds. The packer's count rarely matches the intended tile layout,
// so callers supply the real one. Unknown names are ignored.
func (a *Archive) SetBackgroundColumns(overrides map[string]int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backgrounds == nil {
		return fmt.Errorf("%w: backgrounds not decoded", ErrNotLoaded)
	}
	return a.setBackgroundColumns(overrides)
}

func (a *Archive) setBackgroundColumns(overrides map[string]int) error {
	for name, cols := range overrides {
		if cols <= 0 {
			return fmt.Errorf("%w: background %q: %d columns", ErrInvalidOverride, name, cols)
		}
	}
	for name, cols := range overrides {
		b, ok := a.backgrounds.Get(name)
		if !ok {
			a.logger.Warn("column override for unknown background", "background", name)
			continue
		}
		b.Columns = uint32(cols)
	}
	return nil
}

func (a *Archive) resolveBackground(b *chunk.Background) error {
	if b.Texture.Resolved() {
		return nil
	}
	if b.TextureAddr == 0 {
		a.logger.Debug("background has no texture", "background", b.Name)
		b.Texture.Set(nil)
		return nil
	}

	img, _, err := a.region(int64(b.TextureAddr))
	if err != nil {
		return fmt.Errorf("background %s: %w", b.Name, err)
	}
	b.Texture.Set(img)
	return nil
}
