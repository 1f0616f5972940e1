package chunk

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

// AudioKind tells where a resolved sound's bytes live
type AudioKind int

const (
	// AudioInternal sounds carry their bytes from an AUDO chunk.
	AudioInternal AudioKind = iota
	// AudioExternal sounds are stored on disk next to the archive.
	AudioExternal
)

func (k AudioKind) String() string {
	if k == AudioExternal {
		return "external"
	}
	return "internal"
}

// Audio is the resolved payload of a sound
type Audio struct {
	Kind AudioKind
	Data []byte
}

// Sound is one entry of the SOND chunk
type Sound struct {
	Name     string
	Flags    uint32
	Type     string
	File     string
	Reserved uint32
	Volume   float32
	Pitch    float32
	GroupID  int32
	AudioID  int32
	Audio    Lazy[Audio]
}

// External reports whether the sound's bytes are kept outside the archive
func (s *Sound) External() bool {
	return s.AudioID == -1
}

// Sounds is the decoded SOND chunk
type Sounds = Named[Sound]

type soundRecord struct {
	Name     int32
	Flags    uint32
	Type     int32
	File     int32
	Reserved uint32
	Volume   float32
	Pitch    float32
	GroupID  int32
	AudioID  int32
}

// DecodeSounds decodes the SOND chunk at the cursor position. Audio
// payloads are not fetched.
func DecodeSounds(c *cursor.Cursor) (*Sounds, error) {
	s := &Sounds{}
	err := decodeTable(c, TagSounds, func(int) error {
		var rec soundRecord
		if err := c.Struct(&rec); err != nil {
			return err
		}

		snd := &Sound{
			Flags:    rec.Flags,
			Reserved: rec.Reserved,
			Volume:   rec.Volume,
			Pitch:    rec.Pitch,
			GroupID:  rec.GroupID,
			AudioID:  rec.AudioID,
		}

		var err error
		if snd.Name, err = c.StringAt(int64(rec.Name)); err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		if snd.Type, err = c.StringAt(int64(rec.Type)); err != nil {
			return fmt.Errorf("%s: reading type: %w", snd.Name, err)
		}
		if snd.File, err = c.StringAt(int64(rec.File)); err != nil {
			return fmt.Errorf("%s: reading file: %w", snd.Name, err)
		}

		s.add(snd.Name, snd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
