package archive

import (
	"errors"

	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/codec"
)

// Errors returned by the archive. All of them can be matched with errors.Is
// through any wrapping added along the way.
var (
	ErrFormat       = chunk.ErrFormat
	ErrTruncated    = chunk.ErrTruncated
	ErrEncoding     = chunk.ErrEncoding
	ErrMissingChunk = chunk.ErrMissingChunk
	ErrCodec        = codec.ErrCodec

	// ErrNotLoaded is returned when an operation runs before the chunk or
	// texture page it depends on has been decoded or resolved.
	ErrNotLoaded = errors.New("prerequisite not loaded")

	// ErrIndexOutOfRange is returned when a record refers to a page, audio
	// group or audio blob that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownAsset is returned when a named asset is not in its chunk.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrInvalidOverride is returned for a non-positive column override.
	ErrInvalidOverride = errors.New("invalid override")
)
