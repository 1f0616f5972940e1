package chunk

import (
	"fmt"

	"github.com/jchantrell/winextract/internal/cursor"
)

// General is the GEN8 metadata record
type General struct {
	Debug               uint8
	Reserved1           int32
	Filename            string
	Config              string
	LastObject          uint32
	LastTile            uint32
	GameID              uint32
	Reserved2           [4]uint32
	Name                string
	Major               int32
	Minor               int32
	Release             int32
	Build               int32
	DefaultWindowWidth  int32
	DefaultWindowHeight int32
	Info                uint32
	LicenseMD5          [16]byte
	LicenseCRC32        uint32
	Timestamp           uint64
	DisplayName         string
	ActiveTargets       uint32
	Reserved3           [4]uint32
	SteamAppID          uint32
	Numbers             []uint32
}

type generalHead struct {
	Debug      uint8
	Reserved1  [3]byte
	Filename   int32
	Config     int32
	LastObject uint32
	LastTile   uint32
	GameID     uint32
	Reserved2  [4]uint32
	Name       int32
}

type generalBody struct {
	Major               int32
	Minor               int32
	Release             int32
	Build               int32
	DefaultWindowWidth  int32
	DefaultWindowHeight int32
	Info                uint32
	LicenseMD5          [16]byte
	LicenseCRC32        uint32
	Timestamp           uint64
	DisplayName         int32
	ActiveTargets       uint32
	Reserved3           [4]uint32
	SteamAppID          uint32
	NumberCount         uint32
}

// DecodeGeneral decodes the GEN8 singleton at the cursor position
func DecodeGeneral(c *cursor.Cursor) (*General, error) {
	g, err := decodeGeneral(c)
	if err != nil {
		return nil, chunkErr(TagGeneral, err)
	}
	return g, nil
}

func decodeGeneral(c *cursor.Cursor) (*General, error) {
	var head generalHead
	if err := c.Struct(&head); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	var body generalBody
	if err := c.Struct(&body); err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	numbers, err := readU32s(c, uint64(body.NumberCount))
	if err != nil {
		return nil, fmt.Errorf("reading numbers: %w", err)
	}

	g := &General{
		Debug:               head.Debug,
		Reserved1:           int24(head.Reserved1),
		LastObject:          head.LastObject,
		LastTile:            head.LastTile,
		GameID:              head.GameID,
		Reserved2:           head.Reserved2,
		Major:               body.Major,
		Minor:               body.Minor,
		Release:             body.Release,
		Build:               body.Build,
		DefaultWindowWidth:  body.DefaultWindowWidth,
		DefaultWindowHeight: body.DefaultWindowHeight,
		Info:                body.Info,
		LicenseMD5:          body.LicenseMD5,
		LicenseCRC32:        body.LicenseCRC32,
		Timestamp:           body.Timestamp,
		ActiveTargets:       body.ActiveTargets,
		Reserved3:           body.Reserved3,
		SteamAppID:          body.SteamAppID,
		Numbers:             numbers,
	}

	strs := []struct {
		dst  *string
		ptr  int32
		name string
	}{
		{&g.Filename, head.Filename, "filename"},
		{&g.Config, head.Config, "config"},
		{&g.Name, head.Name, "name"},
		{&g.DisplayName, body.DisplayName, "display name"},
	}
	for _, s := range strs {
		v, err := c.StringAt(int64(s.ptr))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.name, err)
		}
		*s.dst = v
	}

	return g, nil
}

// Version formats the recorded game version as major.minor.release.build
func (g *General) Version() string {
	return fmt.Sprintf("%d.%d.%d.%d", g.Major, g.Minor, g.Release, g.Build)
}

func int24(b [3]byte) int32 {
	return int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
}
