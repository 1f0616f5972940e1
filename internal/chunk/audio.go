package chunk

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

// AudioGroupHeaderSize is the FORM header plus the AUDO header that open an
// audio-group file, whose only chunk is AUDO.
const AudioGroupHeaderSize = 16

// AudioBank is one decoded AUDO chunk. Blobs share the archive buffer and
// must be treated as read-only.
type AudioBank struct {
	Blobs [][]byte
}

// DecodeAudio decodes the AUDO chunk at the cursor position
func DecodeAudio(c *cursor.Cursor) (*AudioBank, error) {
	b := &AudioBank{}
	err := decodeTable(c, TagAudio, func(int) error {
		length, err := c.U32()
		if err != nil {
			return fmt.Errorf("reading length: %w", err)
		}
		data, err := c.Slice(int64(length))
		if err != nil {
			return fmt.Errorf("reading %d bytes: %w", length, err)
		}
		b.Blobs = append(b.Blobs, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeAudioGroup decodes the AUDO chunk of a standalone audio-group file
func DecodeAudioGroup(c *cursor.Cursor) (*AudioBank, error) {
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
	if err := c.Seek(AudioGroupHeaderSize); err != nil {
		return nil, err
	}
	return DecodeAudio(c)
}
