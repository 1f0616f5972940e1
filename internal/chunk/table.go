package chunk

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

// readAddressTable reads a signed 32-bit count followed by that many
// absolute offsets
func readAddressTable(c *cursor.Cursor) ([]int32, error) {
	count, err := c.I32()
	if err != nil {
		return nil, fmt.Errorf("reading table count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative table count %d", ErrTruncated, count)
	}
	if int64(count)*4 > c.Remaining() {
		return nil, fmt.Errorf("%w: table of %d entries at offset %d exceeds buffer", ErrTruncated, count, c.Pos())
	}

	offsets := make([]int32, count)
	if err := c.Struct(offsets); err != nil {
		return nil, fmt.Errorf("reading table offsets: %w", err)
	}
	return offsets, nil
}

// decodeTable reads an address table and calls fn once per record with the
// cursor positioned at that record. Failures are tagged with the record index.
func decodeTable(c *cursor.Cursor, tag Tag, fn func(i int) error) error {
	offsets, err := readAddressTable(c)
	if err != nil {
		return chunkErr(tag, err)
	}

	for i, off := range offsets {
		if err := c.Seek(int64(off)); err != nil {
			return recordErr(tag, i, err)
		}
		if err := fn(i); err != nil {
			return recordErr(tag, i, err)
		}
	}
	return nil
}

// readU32s reads n unsigned 32-bit values, refusing counts the buffer cannot hold
func readU32s(c *cursor.Cursor, n uint64) ([]uint32, error) {
	if n*4 > uint64(c.Remaining()) || n > 1<<30 {
		return nil, fmt.Errorf("%w: array of %d values at offset %d exceeds buffer", ErrTruncated, n, c.Pos())
	}
	out := make([]uint32, n)
	if err := c.Struct(out); err != nil {
		return nil, err
	}
	return out, nil
}
