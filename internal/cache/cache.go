package cache

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/jchantrell/winextract/internal/utils"
)

// Cache handles the per-user cache directory
type Cache struct {
	root string
}

// CacheManager creates a cache rooted in the user's home directory
func CacheManager() *Cache {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &Cache{root: filepath.Join(".", ".winextract", "cache")}
	}
	return &Cache{root: filepath.Join(homeDir, ".winextract", "cache")}
}

// At creates a cache rooted at dir
func At(dir string) *Cache {
	return &Cache{root: dir}
}

// GetCacheDir returns the cache root
func (m *Cache) GetCacheDir() string {
	return m.root
}

// GetGameDir returns the cache directory for one game. Games are keyed by
// display name and the archive's GEN8 timestamp so rebuilds get their own
// directory.
func (m *Cache) GetGameDir(name string, timestamp uint64) string {
	dir := utils.SanitizeName(name)
	if dir == "" {
		dir = "game"
	}
	return filepath.Join(m.root, dir+"-"+shortHash(name, timestamp))
}

// GetCatalogPath returns the default catalog database path for a game
func (m *Cache) GetCatalogPath(name string, timestamp uint64) string {
	return filepath.Join(m.GetGameDir(name, timestamp), "catalog.db")
}

// EnsureDir creates a directory and all parent directories
func (m *Cache) EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// FileExists checks if a file exists
func (m *Cache) FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// GetFileSize returns the size of a file, or 0 if it doesn't exist
func (m *Cache) GetFileSize(filename string) int64 {
	info, err := os.Stat(filename)
	if err != nil {
		return 0
	}
	return info.Size()
}

func shortHash(name string, timestamp uint64) string {
	h := sha1.New()
	h.Write([]byte(name))
	h.Write(binary.LittleEndian.AppendUint64(nil, timestamp))
	return hex.EncodeToString(h.Sum(nil))[:10]
}
