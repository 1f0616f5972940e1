package chunk

import "fmt"

// Tag is the four-byte identifier that opens every chunk
type Tag [4]byte

func (t Tag) String() string {
	return string(t[:])
}

// MakeTag converts a four-character string into a Tag
func MakeTag(s string) Tag {
	var t Tag
	copy(t[:], s)
	return t
}

// Known tags
var (
	TagForm        = MakeTag("FORM")
	TagGeneral     = MakeTag("GEN8")
	TagOptions     = MakeTag("OPTN")
	TagSounds      = MakeTag("SOND")
	TagAudio       = MakeTag("AUDO")
	TagSprites     = MakeTag("SPRT")
	TagAtlas       = MakeTag("TPAG")
	TagPages       = MakeTag("TXTR")
	TagFonts       = MakeTag("FONT")
	TagBackgrounds = MakeTag("BGND")
)

// Kind identifies one of the chunk categories this package can decode
type Kind int

const (
	KindGeneral Kind = iota
	KindOptions
	KindSounds
	KindAudio
	KindSprites
	KindAtlas
	KindPages
	KindFonts
	KindBackgrounds
)

var kindNames = map[Kind]string{
	KindGeneral:     "general",
	KindOptions:     "options",
	KindSounds:      "sounds",
	KindAudio:       "audio",
	KindSprites:     "sprites",
	KindAtlas:       "atlas",
	KindPages:       "pages",
	KindFonts:       "fonts",
	KindBackgrounds: "backgrounds",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Tag returns the chunk tag decoded by this kind
func (k Kind) Tag() Tag {
	for tag, kind := range Kinds {
		if kind == k {
			return tag
		}
	}
	return Tag{}
}

// Kinds is the closed registry of decodable chunks. Tags missing from it are
// skipped by length and never decoded.
var Kinds = map[Tag]Kind{
	TagGeneral:     KindGeneral,
	TagOptions:     KindOptions,
	TagSounds:      KindSounds,
	TagAudio:       KindAudio,
	TagSprites:     KindSprites,
	TagAtlas:       KindAtlas,
	TagPages:       KindPages,
	TagFonts:       KindFonts,
	TagBackgrounds: KindBackgrounds,
}

// Lookup returns the kind registered for tag
func Lookup(tag Tag) (Kind, bool) {
	k, ok := Kinds[tag]
	return k, ok
}
