package archive

import (
	"fmt"
	"image"

	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/cursor"
)

// ResolvePages decodes the image of every unresolved texture page
func (a *Archive) ResolvePages() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pages == nil {
		return fmt.Errorf("%w: texture pages not decoded", ErrNotLoaded)
	}

	pages := a.pages.Pages
	return a.forEach(len(pages), func(i int) error {
		return a.resolvePage(i, pages[i])
	})
}

func (a *Archive) resolvePage(i int, p *chunk.Page) error {
	if p.Image.Resolved() {
		return nil
	}

	tail, err := cursor.New(a.data).Tail(int64(p.ImageAddr))
	if err != nil {
		return fmt.Errorf("page %d: %w", i, err)
	}
	img, err := a.codec.Decode(tail)
	if err != nil {
		return fmt.Errorf("page %d: %w", i, err)
	}

	p.Image.Set(img)
	a.logger.Debug("resolved page", "page", i, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// pageImage returns the resolved image of a page, failing when the pages
// chunk is not decoded, the index is out of range or the page is unresolved
func (a *Archive) pageImage(index uint16) (image.Image, error) {
	if a.pages == nil {
		return nil, fmt.Errorf("%w: texture pages not decoded", ErrNotLoaded)
	}
	if int(index) >= len(a.pages.Pages) {
		return nil, fmt.Errorf("%w: page %d of %d", ErrIndexOutOfRange, index, len(a.pages.Pages))
	}
	img, ok := a.pages.Pages[index].Image.Get()
	if !ok {
		return nil, fmt.Errorf("%w: page %d not resolved", ErrNotLoaded, index)
	}
	return img, nil
}

// region decodes the atlas record at addr and crops it out of its page
func (a *Archive) region(addr int64) (image.Image, chunk.AtlasEntry, error) {
	c := cursor.New(a.data)
	if err := c.Seek(addr); err != nil {
		return nil, chunk.AtlasEntry{}, err
	}
	e, err := chunk.DecodeAtlasEntry(c)
	if err != nil {
		return nil, e, fmt.Errorf("reading atlas record at %d: %w", addr, err)
	}
	page, err := a.pageImage(e.Page)
	if err != nil {
		return nil, e, err
	}
	return crop(page, e.Rect()), e, nil
}
