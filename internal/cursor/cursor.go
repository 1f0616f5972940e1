package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

var (
	// ErrTruncated is returned when a read runs past the end of the buffer
	// or an offset cannot be used as a position.
	ErrTruncated = errors.New("truncated")

	// ErrEncoding is returned when a string is not valid UTF-8.
	ErrEncoding = errors.New("invalid string encoding")
)

// Cursor is a seekable little-endian reader over an in-memory buffer.
// The buffer is never written; several cursors may share it.
type Cursor struct {
	data []byte
	pos  int64
}

// New creates a cursor positioned at the start of data
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Clone returns an independent cursor over the same bytes at the same position
func (c *Cursor) Clone() *Cursor {
	return &Cursor{data: c.data, pos: c.pos}
}

// Pos returns the current absolute position
func (c *Cursor) Pos() int64 {
	return c.pos
}

// Len returns the size of the underlying buffer
func (c *Cursor) Len() int64 {
	return int64(len(c.data))
}

// Seek moves to an absolute offset. Offsets past the end are accepted and
// fail on the next read.
func (c *Cursor) Seek(off int64) error {
	if off < 0 {
		return fmt.Errorf("%w: cannot seek to offset %d", ErrTruncated, off)
	}
	c.pos = off
	return nil
}

// Skip moves forward by n bytes
func (c *Cursor) Skip(n int64) error {
	if n < 0 || c.pos > math.MaxInt64-n {
		return fmt.Errorf("%w: cannot skip %d bytes at offset %d", ErrTruncated, n, c.pos)
	}
	c.pos += n
	return nil
}

// take returns the next n bytes without copying and advances
func (c *Cursor) take(n int64) ([]byte, error) {
	size := int64(len(c.data))
	if n < 0 || c.pos > size || size-c.pos < n {
		return nil, fmt.Errorf("%w: reading %d bytes at offset %d (size %d)", ErrTruncated, n, c.pos, size)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads an unsigned byte
func (c *Cursor) U8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// I8 reads a signed byte
func (c *Cursor) I8() (int8, error) {
	v, err := c.U8()
	return int8(v), err
}

// U16 reads a little-endian uint16
func (c *Cursor) U16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// I16 reads a little-endian int16
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// U24 reads an unsigned 24-bit integer
func (c *Cursor) U24() (uint32, error) {
	b, err := c.take(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// I24 reads a sign-extended 24-bit integer
func (c *Cursor) I24() (int32, error) {
	v, err := c.U24()
	if err != nil {
		return 0, err
	}
	return int32(v<<8) >> 8, nil
}

// U32 reads a little-endian uint32
func (c *Cursor) U32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a little-endian int32
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64
func (c *Cursor) U64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// I64 reads a little-endian int64
func (c *Cursor) I64() (int64, error) {
	v, err := c.U64()
	return int64(v), err
}

// F32 reads a little-endian IEEE 754 float32
func (c *Cursor) F32() (float32, error) {
	v, err := c.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Tag reads four raw bytes
func (c *Cursor) Tag() ([4]byte, error) {
	var tag [4]byte
	b, err := c.take(4)
	if err != nil {
		return tag, err
	}
	copy(tag[:], b)
	return tag, nil
}

// Bytes reads n bytes into a freshly allocated slice
func (c *Cursor) Bytes(n int64) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Slice returns the next n bytes without copying. The result shares the
// backing buffer and has its capacity capped at n.
func (c *Cursor) Slice(n int64) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	return b[:len(b):len(b)], nil
}

// Remaining returns the number of bytes left after the current position
func (c *Cursor) Remaining() int64 {
	if c.pos >= int64(len(c.data)) {
		return 0
	}
	return int64(len(c.data)) - c.pos
}

// Struct decodes a fixed-size value (or slice of fixed-size values) laid out
// little-endian at the current position. Blank fields are skipped.
func (c *Cursor) Struct(v any) error {
	n := binary.Size(v)
	if n < 0 {
		return fmt.Errorf("cursor: %T has no fixed size", v)
	}
	b, err := c.take(int64(n))
	if err != nil {
		return err
	}
	_, err = binary.Decode(b, binary.LittleEndian, v)
	return err
}

// Tail returns the bytes from off to the end of the buffer without copying.
// The caller must not modify the result.
func (c *Cursor) Tail(off int64) ([]byte, error) {
	if off < 0 || off > int64(len(c.data)) {
		return nil, fmt.Errorf("%w: offset %d outside buffer (size %d)", ErrTruncated, off, len(c.data))
	}
	return c.data[off:], nil
}

// StringAt reads a NUL-terminated string at an absolute offset. The cursor
// position is restored whether or not the read succeeds.
func (c *Cursor) StringAt(off int64) (string, error) {
	if off == 0 {
		return "", nil
	}

	saved := c.pos
	defer func() { c.pos = saved }()

	if err := c.Seek(off); err != nil {
		return "", err
	}
	return c.cstring()
}

// StringPtr reads a 32-bit offset and dereferences it with StringAt
func (c *Cursor) StringPtr() (string, error) {
	off, err := c.I32()
	if err != nil {
		return "", err
	}
	return c.StringAt(int64(off))
}

func (c *Cursor) cstring() (string, error) {
	start := c.pos
	size := int64(len(c.data))
	if start > size {
		return "", fmt.Errorf("%w: string at offset %d (size %d)", ErrTruncated, start, size)
	}

	end := start
	for end < size && c.data[end] != 0 {
		end++
	}
	if end == size {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, start)
	}

	raw := c.data[start:end]
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: string at offset %d", ErrEncoding, start)
	}
	c.pos = end + 1
	return string(raw), nil
}
