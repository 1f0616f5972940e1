package config

import (
	"fmt"
	"slices"
	"strings"
)

// Asset kinds the extractor knows how to export
const (
	AssetPages       = "pages"
	AssetSprites     = "sprites"
	AssetFonts       = "fonts"
	AssetBackgrounds = "backgrounds"
	AssetSounds      = "sounds"
)

// AllAssets lists every asset kind in export order
var AllAssets = []string{AssetPages, AssetSprites, AssetFonts, AssetBackgrounds, AssetSounds}

// validateAssets ensures all requested asset kinds are supported
func validateAssets(assets []string) error {
	for _, a := range assets {
		if a == "" {
			return fmt.Errorf("asset kind cannot be empty")
		}
		if !slices.Contains(AllAssets, a) {
			return fmt.Errorf("unsupported asset kind '%s': supported kinds are %s", a, strings.Join(AllAssets, ", "))
		}
	}
	return nil
}

// Wants reports whether the asset kind is selected. An empty selection
// selects everything.
func (c *Config) Wants(kind string) bool {
	return len(c.Assets) == 0 || slices.Contains(c.Assets, kind)
}
