package archive

import (
	"fmt"
	"image"

	"github.com/jchantrell/winextract/internal/chunk"
)

// ResolveSprite crops the frames of one sprite out of its texture pages
func (a *Archive) ResolveSprite(name string) (*chunk.Sprite, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sprites == nil {
		return nil, fmt.Errorf("%w: sprites not decoded", ErrNotLoaded)
	}
	s, ok := a.sprites.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: sprite %q", ErrUnknownAsset, name)
	}
	if err := a.resolveSprite(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveSprites resolves every sprite in table order
func (a *Archive) ResolveSprites() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sprites == nil {
		return fmt.Errorf("%w: sprites not decoded", ErrNotLoaded)
	}
	all := a.sprites.All()
	return a.forEach(len(all), func(i int) error {
		return a.resolveSprite(all[i])
	})
}

func (a *Archive) resolveSprite(s *chunk.Sprite) error {
	if s.Frames.Resolved() {
		return nil
	}

	frames := make([]image.Image, 0, len(s.FrameAddrs))
	for i, addr := range s.FrameAddrs {
		if addr == 0 {
			a.logger.Debug("sprite frame has no texture", "sprite", s.Name, "frame", i)
			continue
		}
		img, _, err := a.region(int64(addr))
		if err != nil {
			return fmt.Errorf("sprite %s: frame %d: %w", s.Name, i, err)
		}
		frames = append(frames, img)
	}

	s.Frames.Set(frames)
	return nil
}
