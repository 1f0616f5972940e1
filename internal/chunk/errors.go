package chunk

import (
	"errors"
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

var (
	// ErrFormat is returned when the input does not start with the FORM tag.
	ErrFormat = errors.New("not a FORM archive")

	// ErrTruncated is returned when a read or offset leaves the buffer.
	ErrTruncated = cursor.ErrTruncated

	// ErrEncoding is returned when a string is not valid UTF-8.
	ErrEncoding = cursor.ErrEncoding

	// ErrMissingChunk is returned when a requested tag is absent from the directory.
	ErrMissingChunk = errors.New("chunk not present")
)

// RecordError locates a failure inside a chunk
type RecordError struct {
	Tag    Tag
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("chunk %s: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("chunk %s: record %s: %v", e.Tag, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func recordErr(tag Tag, index int, err error) error {
	return &RecordError{Tag: tag, Record: fmt.Sprintf("#%d", index), Err: err}
}

func chunkErr(tag Tag, err error) error {
	return &RecordError{Tag: tag, Err: err}
}
