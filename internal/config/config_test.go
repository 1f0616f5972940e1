package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "winextract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "data.win", cfg.Archive)
	assert.Equal(t, "assets", cfg.Output)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, AllAssets, cfg.Assets)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Wants(AssetSounds))
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
archive: game/data.win
audio_groups:
  - game/audiogroup1.dat
  - game/audiogroup2.dat
output: out
assets: [sprites, backgrounds]
workers: 4
background_columns:
  bg_tiles: 8
log_level: debug
log_format: json
`)
	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "game/data.win", cfg.Archive)
	assert.Equal(t, []string{"game/audiogroup1.dat", "game/audiogroup2.dat"}, cfg.AudioGroups)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, map[string]int{"bg_tiles": 8}, cfg.BackgroundColumns)
	assert.True(t, cfg.Wants(AssetSprites))
	assert.False(t, cfg.Wants(AssetPages))
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFlagOverride(t *testing.T) {
	path := writeConfig(t, "workers: 2\n")
	v := New()
	v.Set("workers", 6)

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown asset", "assets: [rooms]\n"},
		{"empty asset", "assets: ['']\n"},
		{"zero workers", "workers: 0\n"},
		{"negative columns", "background_columns:\n  bg: -1\n"},
		{"log level", "log_level: loud\n"},
		{"log format", "log_format: xml\n"},
		{"empty archive", "archive: ''\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(), writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
