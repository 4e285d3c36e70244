package resource

import (
	"os"
	"path/filepath"
)

// Source reads raw resource content by path.
type Source interface {
	// ReadFile returns the full content at name.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether name refers to a readable resource.
	Exists(name string) bool
}

// DiskSource reads resources from the local filesystem.
type DiskSource struct{}

// ReadFile implements Source.
func (DiskSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Exists implements Source. Directories do not count as resources.
func (DiskSource) Exists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

// Abs makes dir absolute relative to base. Absolute dirs are returned cleaned.
func Abs(base, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	if base == "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
	}
	return filepath.Join(base, dir)
}
