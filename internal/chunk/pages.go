package chunk

import (
	"image"

	"github.com/jchantrell/winextract/internal/cursor"
)

// Page is one packed texture page from the TXTR chunk
type Page struct {
	Reserved1 uint32
	Reserved2 uint32
	ImageAddr uint32
	Image     Lazy[image.Image]
}

// Pages is the decoded TXTR chunk, addressed by position
type Pages struct {
	Pages []*Page
}

type pageRecord struct {
	Reserved1 uint32
	Reserved2 uint32
	ImageAddr uint32
}

// DecodePages decodes the TXTR chunk at the cursor position. Page images
// are left unresolved.
func DecodePages(c *cursor.Cursor) (*Pages, error) {
	p := &Pages{}
	err := decodeTable(c, TagPages, func(int) error {
		var rec pageRecord
		if err := c.Struct(&rec); err != nil {
			return err
		}
		p.Pages = append(p.Pages, &Page{
			Reserved1: rec.Reserved1,
			Reserved2: rec.Reserved2,
			ImageAddr: rec.ImageAddr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
