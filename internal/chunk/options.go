package chunk

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

// Constant is one name/value pair from the OPTN chunk
type Constant struct {
	Name  string
	Value string
}

// Options is the decoded OPTN chunk
type Options struct {
	Reserved1 [2]uint32
	Info      uint32
	Reserved2 [12]uint32
	Constants []Constant
}

type optionsHead struct {
	Reserved1 [2]uint32
	Info      uint32
	Reserved2 [12]uint32
}

// DecodeOptions decodes the OPTN chunk at the cursor position
func DecodeOptions(c *cursor.Cursor) (*Options, error) {
	var head optionsHead
	if err := c.Struct(&head); err != nil {
		return nil, chunkErr(TagOptions, fmt.Errorf("reading header: %w", err))
	}

	o := &Options{
		Reserved1: head.Reserved1,
		Info:      head.Info,
		Reserved2: head.Reserved2,
	}

	err := decodeTable(c, TagOptions, func(int) error {
		name, err := c.StringPtr()
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		value, err := c.StringPtr()
		if err != nil {
			return fmt.Errorf("reading value of %s: %w", name, err)
		}
		o.Constants = append(o.Constants, Constant{Name: name, Value: value})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return o, nil
}

// Lookup returns the value of the first constant called name
func (o *Options) Lookup(name string) (string, bool) {
	for _, c := range o.Constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
