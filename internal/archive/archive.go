// Package archive opens FORM archives, decodes their chunks on demand and
// materializes the images and audio they reference.
package archive

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/codec"
	"github.com/jchantrell/winextract/internal/cursor"
)

// Prepared holds the raw buffers of an archive whose directory has not been
// read yet.
type Prepared struct {
	data   []byte
	groups [][]byte
	opts   settings
}

// Prepare takes ownership of the primary archive bytes and the audio-group
// file bytes, in group order starting at group 1. The buffers must not be
// modified afterwards.
func Prepare(data []byte, groups [][]byte, opts ...Option) *Prepared {
	s := defaults()
	for _, o := range opts {
		o(&s)
	}
	return &Prepared{data: data, groups: groups, opts: s}
}

// Index scans the chunk directory and returns an archive ready for decoding
func (p *Prepared) Index() (*Archive, error) {
	dir, err := chunk.ReadDirectory(cursor.New(p.data))
	if err != nil {
		return nil, fmt.Errorf("reading chunk directory: %w", err)
	}

	a := &Archive{
		data:    p.data,
		groups:  p.groups,
		dir:     dir,
		codec:   p.opts.codec,
		workers: p.opts.workers,
		logger:  p.opts.logger,
	}
	a.logger.Debug("indexed archive", "size", len(p.data), "chunks", len(dir.Tags()), "audio_groups", len(p.groups))
	return a, nil
}

// Open prepares and indexes an archive in one step
func Open(data []byte, groups [][]byte, opts ...Option) (*Archive, error) {
	return Prepare(data, groups, opts...).Index()
}

// OpenFile reads the archive and its audio-group files from disk and indexes it
func OpenFile(path string, groupPaths []string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	groups := make([][]byte, 0, len(groupPaths))
	for _, gp := range groupPaths {
		g, err := os.ReadFile(gp)
		if err != nil {
			return nil, fmt.Errorf("reading audio group: %w", err)
		}
		groups = append(groups, g)
	}

	return Open(data, groups, opts...)
}

// Archive is an indexed FORM archive. Each chunk category is decoded at
// most once; assets are resolved in place on the decoded records. Methods
// are safe to call from multiple goroutines but run one at a time.
type Archive struct {
	mu sync.Mutex

	data    []byte
	groups  [][]byte
	dir     *chunk.Directory
	codec   codec.Codec
	workers int
	logger  *slog.Logger

	general     *chunk.General
	options     *chunk.Options
	sounds      *chunk.Sounds
	audio       []*chunk.AudioBank
	sprites     *chunk.Sprites
	atlas       *chunk.Atlas
	pages       *chunk.Pages
	fonts       *chunk.Fonts
	backgrounds *chunk.Backgrounds
}

// Tags returns the chunk tags present in the archive in file order
func (a *Archive) Tags() []chunk.Tag {
	return a.dir.Tags()
}

// Directory returns the chunk directory
func (a *Archive) Directory() *chunk.Directory {
	return a.dir
}

// Size returns the size of the primary archive in bytes
func (a *Archive) Size() int {
	return len(a.data)
}

// AudioGroups returns the number of audio-group files supplied
func (a *Archive) AudioGroups() int {
	return len(a.groups)
}

// decodeOnce decodes the chunk tagged tag into *slot unless it is already set
func decodeOnce[T any](a *Archive, slot **T, tag chunk.Tag, decode func(*cursor.Cursor) (*T, error)) (*T, error) {
	if *slot != nil {
		return *slot, nil
	}

	c := cursor.New(a.data)
	if err := a.dir.Seek(c, tag); err != nil {
		return nil, err
	}
	v, err := decode(c)
	if err != nil {
		return nil, err
	}

	*slot = v
	a.logger.Debug("decoded chunk", "tag", tag.String())
	return v, nil
}

// DecodeGeneral decodes the GEN8 game metadata chunk. Later calls return the first result.
func (a *Archive) DecodeGeneral() (*chunk.General, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.general, chunk.TagGeneral, chunk.DecodeGeneral)
}

// DecodeOptions decodes the OPTN options chunk. Later calls return the first result.
func (a *Archive) DecodeOptions() (*chunk.Options, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.options, chunk.TagOptions, chunk.DecodeOptions)
}

// DecodeSounds decodes the SOND sound entries. Later calls return the first result.
func (a *Archive) DecodeSounds() (*chunk.Sounds, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.sounds, chunk.TagSounds, chunk.DecodeSounds)
}

// DecodeSprites decodes the SPRT sprite entries. Later calls return the first result.
func (a *Archive) DecodeSprites() (*chunk.Sprites, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.sprites, chunk.TagSprites, chunk.DecodeSprites)
}

// DecodeAtlas decodes the TPAG atlas geometry. Later calls return the first result.
func (a *Archive) DecodeAtlas() (*chunk.Atlas, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.atlas, chunk.TagAtlas, chunk.DecodeAtlas)
}

// DecodePages decodes the TXTR texture page table. Later calls return the first result.
func (a *Archive) DecodePages() (*chunk.Pages, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.pages, chunk.TagPages, chunk.DecodePages)
}

// DecodeFonts decodes the FONT font entries. Later calls return the first result.
func (a *Archive) DecodeFonts() (*chunk.Fonts, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.fonts, chunk.TagFonts, chunk.DecodeFonts)
}

// DecodeBackgrounds decodes the BGND background entries. Later calls return the first result.
func (a *Archive) DecodeBackgrounds() (*chunk.Backgrounds, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return decodeOnce(a, &a.backgrounds, chunk.TagBackgrounds, chunk.DecodeBackgrounds)
}

// DecodeAudio decodes the primary AUDO chunk followed by every audio-group
// file. Index 0 of the result is the primary archive's audio.
func (a *Archive) DecodeAudio() ([]*chunk.AudioBank, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.decodeAudio()
}

func (a *Archive) decodeAudio() ([]*chunk.AudioBank, error) {
	if a.audio != nil {
		return a.audio, nil
	}

	c := cursor.New(a.data)
	if err := a.dir.Seek(c, chunk.TagAudio); err != nil {
		return nil, err
	}
	primary, err := chunk.DecodeAudio(c)
	if err != nil {
		return nil, err
	}

	banks := make([]*chunk.AudioBank, 0, len(a.groups)+1)
	banks = append(banks, primary)
	for i, g := range a.groups {
		bank, err := chunk.DecodeAudioGroup(cursor.New(g))
		if err != nil {
			return nil, fmt.Errorf("audio group %d: %w", i+1, err)
		}
		banks = append(banks, bank)
	}

	a.audio = banks
	a.logger.Debug("decoded audio", "groups", len(banks))
	return banks, nil
}

// Decode decodes one chunk category
func (a *Archive) Decode(kind chunk.Kind) error {
	var err error
	switch kind {
	case chunk.KindGeneral:
		_, err = a.DecodeGeneral()
	case chunk.KindOptions:
		_, err = a.DecodeOptions()
	case chunk.KindSounds:
		_, err = a.DecodeSounds()
	case chunk.KindAudio:
		_, err = a.DecodeAudio()
	case chunk.KindSprites:
		_, err = a.DecodeSprites()
	case chunk.KindAtlas:
		_, err = a.DecodeAtlas()
	case chunk.KindPages:
		_, err = a.DecodePages()
	case chunk.KindFonts:
		_, err = a.DecodeFonts()
	case chunk.KindBackgrounds:
		_, err = a.DecodeBackgrounds()
	default:
		err = fmt.Errorf("no decoder for %s", kind)
	}
	return err
}

// DecodeAll decodes every recognized chunk present in the archive. A chunk
// that fails does not stop the others; all failures are returned joined.
func (a *Archive) DecodeAll() error {
	var errs []error
	for _, tag := range a.dir.Tags() {
		kind, ok := chunk.Lookup(tag)
		if !ok {
			a.logger.Debug("skipping chunk", "tag", tag.String())
			continue
		}
		if err := a.Decode(kind); err != nil {
			errs = append(errs, fmt.Errorf("decoding %s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}

// Decoded reports whether a chunk category has been decoded
func (a *Archive) Decoded(kind chunk.Kind) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch kind {
	case chunk.KindGeneral:
		return a.general != nil
	case chunk.KindOptions:
		return a.options != nil
	case chunk.KindSounds:
		return a.sounds != nil
	case chunk.KindAudio:
		return a.audio != nil
	case chunk.KindSprites:
		return a.sprites != nil
	case chunk.KindAtlas:
		return a.atlas != nil
	case chunk.KindPages:
		return a.pages != nil
	case chunk.KindFonts:
		return a.fonts != nil
	case chunk.KindBackgrounds:
		return a.backgrounds != nil
	}
	return false
}

// General returns the decoded GEN8 chunk, or nil before decoding
func (a *Archive) General() *chunk.General {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.general
}

// Options returns the decoded OPTN chunk, or nil before decoding
func (a *Archive) Options() *chunk.Options {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.options
}

// Sounds returns the decoded sound entries, or nil before decoding
func (a *Archive) Sounds() *chunk.Sounds {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sounds
}

// Audio returns the decoded audio banks, primary first, or nil before decoding
func (a *Archive) Audio() []*chunk.AudioBank {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.audio
}

// Sprites returns the decoded sprite entries, or nil before decoding
func (a *Archive) Sprites() *chunk.Sprites {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sprites
}

// Atlas returns the decoded atlas geometry, or nil before decoding
func (a *Archive) Atlas() *chunk.Atlas {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.atlas
}

// Pages returns the decoded texture pages, or nil before decoding
func (a *Archive) Pages() *chunk.Pages {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pages
}

// Fonts returns the decoded fonts, or nil before decoding
func (a *Archive) Fonts() *chunk.Fonts {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fonts
}

// Backgrounds returns the decoded backgrounds, or nil before decoding
func (a *Archive) Backgrounds() *chunk.Backgrounds {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backgrounds
}
