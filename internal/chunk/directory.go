package chunk

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

// Directory maps chunk tags to the offset of their payload
type Directory struct {
	offsets map[Tag]int64
	lengths map[Tag]int64
	order   []Tag
}

// ReadDirectory scans the top-level FORM container once without decoding
// any payload.
func ReadDirectory(c *cursor.Cursor) (*Directory, error) {
	if err := c.Seek(0); err != nil {
		return nil, err
	}

	root, err := c.Tag()
	if err != nil {
		return nil, fmt.Errorf("reading root tag: %w", err)
	}
	if Tag(root) != TagForm {
		return nil, fmt.Errorf("%w: root tag %q", ErrFormat, Tag(root).String())
	}
	if _, err := c.I32(); err != nil {
		return nil, fmt.Errorf("reading root length: %w", err)
	}

	d := &Directory{
		offsets: make(map[Tag]int64),
		lengths: make(map[Tag]int64),
	}

	for c.Pos() != c.Len() {
		start := c.Pos()
		raw, err := c.Tag()
		if err != nil {
			return nil, fmt.Errorf("reading chunk tag at offset %d: %w", start, err)
		}
		tag := Tag(raw)

		length, err := c.I32()
		if err != nil {
			return nil, fmt.Errorf("reading length of chunk %s: %w", tag, err)
		}
		if length < 0 {
			return nil, fmt.Errorf("%w: chunk %s has negative length %d", ErrTruncated, tag, length)
		}

		if _, seen := d.offsets[tag]; !seen {
			d.order = append(d.order, tag)
		}
		d.offsets[tag] = c.Pos()
		d.lengths[tag] = int64(length)

		if err := c.Skip(int64(length)); err != nil {
			return nil, fmt.Errorf("skipping chunk %s: %w", tag, err)
		}
	}

	return d, nil
}

// Offset returns the payload offset of tag
func (d *Directory) Offset(tag Tag) (int64, bool) {
	off, ok := d.offsets[tag]
	return off, ok
}

// Length returns the recorded payload length of tag
func (d *Directory) Length(tag Tag) (int64, bool) {
	n, ok := d.lengths[tag]
	return n, ok
}

// Has reports whether tag is present
func (d *Directory) Has(tag Tag) bool {
	_, ok := d.offsets[tag]
	return ok
}

// Tags returns the chunk tags in file order
func (d *Directory) Tags() []Tag {
	out := make([]Tag, len(d.order))
	copy(out, d.order)
	return out
}

// Seek positions c at the payload of tag
func (d *Directory) Seek(c *cursor.Cursor, tag Tag) error {
	off, ok := d.offsets[tag]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingChunk, tag)
	}
	return c.Seek(off)
}
