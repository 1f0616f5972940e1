package chunk

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchantrell/winextract/internal/cursor"
	"github.com/jchantrell/winextract/internal/testutil"
)

func TestReadDirectory(t *testing.T) {
	t.Parallel()

	b := testutil.NewBuilder()
	b.Begin("GEN8").Zero(8).End()
	b.Begin("CODE").Zero(3).End()
	b.Begin("TXTR").I32(0).End()
	data := b.Bytes()
	orig := bytes.Clone(data)

	dir, err := ReadDirectory(cursor.New(data))
	require.NoError(t, err)

	assert.Equal(t, []Tag{TagGeneral, MakeTag("CODE"), TagPages}, dir.Tags())

	off, ok := dir.Offset(TagGeneral)
	require.True(t, ok)
	assert.Equal(t, int64(16), off)

	off, ok = dir.Offset(MakeTag("CODE"))
	require.True(t, ok)
	assert.Equal(t, int64(32), off)

	n, ok := dir.Length(MakeTag("CODE"))
	require.True(t, ok)
	assert.Equal(t, int64(3), n)

	assert.False(t, dir.Has(TagSprites))
	assert.Equal(t, orig, data, "directory build must not mutate input")
}

func TestReadDirectoryBadRoot(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilderWithRoot("RIFF").Bytes()
	_, err := ReadDirectory(cursor.New(data))
	require.ErrorIs(t, err, ErrFormat)
}

func TestReadDirectoryEmpty(t *testing.T) {
	t.Parallel()

	_, err := ReadDirectory(cursor.New(nil))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReadDirectoryOvershoot(t *testing.T) {
	t.Parallel()

	data := []byte("FORM\x00\x00\x00\x00ABCD")
	data = binary.LittleEndian.AppendUint32(data, 100)
	data = append(data, 1, 2)

	_, err := ReadDirectory(cursor.New(data))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestReadDirectoryNegativeLength(t *testing.T) {
	t.Parallel()

	data := []byte("FORM\x00\x00\x00\x00ABCD\xff\xff\xff\xff")
	_, err := ReadDirectory(cursor.New(data))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDirectorySeekMissing(t *testing.T) {
	t.Parallel()

	data := testutil.NewBuilder().Begin("GEN8").End().Bytes()
	dir, err := ReadDirectory(cursor.New(data))
	require.NoError(t, err)

	err = dir.Seek(cursor.New(data), TagFonts)
	require.ErrorIs(t, err, ErrMissingChunk)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	for tag, kind := range Kinds {
		assert.Equal(t, tag, kind.Tag())
		got, ok := Lookup(tag)
		require.True(t, ok)
		assert.Equal(t, kind, got)
	}
	_, ok := Lookup(MakeTag("CODE"))
	assert.False(t, ok)
	assert.Len(t, Kinds, 9)
}
