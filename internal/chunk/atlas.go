package chunk

import (
	"image"

	"github.com/jchantrell/winextract/internal/cursor"
)

// AtlasEntry locates one frame's pixels inside a texture page. The same
// layout is used by the TPAG table and by pointers embedded elsewhere.
type AtlasEntry struct {
	X              uint16
	Y              uint16
	Width          uint16
	Height         uint16
	RenderX        uint16
	RenderY        uint16
	BoundingX      uint16
	BoundingY      uint16
	BoundingWidth  uint16
	BoundingHeight uint16
	Page           uint16
}

// Rect returns the source rectangle on the page
func (e AtlasEntry) Rect() image.Rectangle {
	return image.Rect(int(e.X), int(e.Y), int(e.X)+int(e.Width), int(e.Y)+int(e.Height))
}

// Atlas is the decoded TPAG chunk
type Atlas struct {
	Entries []AtlasEntry
}

// DecodeAtlasEntry decodes one geometry record at the cursor position
func DecodeAtlasEntry(c *cursor.Cursor) (AtlasEntry, error) {
	var e AtlasEntry
	err := c.Struct(&e)
	return e, err
}

// DecodeAtlas decodes the TPAG chunk at the cursor position
func DecodeAtlas(c *cursor.Cursor) (*Atlas, error) {
	a := &Atlas{}
	err := decodeTable(c, TagAtlas, func(int) error {
		e, err := DecodeAtlasEntry(c)
		if err != nil {
			return err
		}
		a.Entries = append(a.Entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
