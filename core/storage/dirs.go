// Package storage provides the opaque key-value persistence layer used for
// API keys and settings, with platform-native directory resolution.
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// Dirs holds the platform-appropriate directories for persistent state.
type Dirs struct {
	Config string // settings, credentials
	Data   string // key-value database
}

var (
	globalDirs     *Dirs
	globalDirsOnce sync.Once
)

// ResolveDirs returns platform-appropriate directories with XDG support.
// Results are cached after first call.
func ResolveDirs() *Dirs {
	globalDirsOnce.Do(func() {
		globalDirs = &Dirs{
			Config: resolveDir("XDG_CONFIG_HOME", platformConfigDefault()),
			Data:   resolveDir("XDG_DATA_HOME", platformDataDefault()),
		}
	})
	return globalDirs
}

func resolveDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, "sidekick")
	}
	return fallback
}

// DefaultDatabasePath returns the standard location of the key-value store.
func DefaultDatabasePath() string {
	return filepath.Join(ResolveDirs().Data, "sidekick.db")
}

// EnsureDir creates a directory if it doesn't exist. Zero perm defaults to
// 0700 since the store holds credentials.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0700
	}
	return os.MkdirAll(path, perm)
}
