package resource

import (
	"path/filepath"
	"sync"

	"github.com/vango-dev/els/internal/errors"
)

// Cache memoizes resource content by path.
//
// A Cache is safe for concurrent use. Content is cached verbatim after the
// first successful load and is never invalidated except by Reset.
type Cache struct {
	source Source

	mu      sync.RWMutex
	entries map[string]string
}

// NewCache creates a Cache reading from source. A nil source reads from disk.
func NewCache(source Source) *Cache {
	if source == nil {
		source = DiskSource{}
	}
	return &Cache{
		source:  source,
		entries: make(map[string]string),
	}
}

// Source returns the underlying source.
func (c *Cache) Source() Source {
	return c.source
}

// Load returns the content at path, reading it on first use.
// A failed read returns an E001 error and is not cached.
func (c *Cache) Load(path string) (string, error) {
	key := filepath.Clean(path)

	c.mu.RLock()
	content, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return content, nil
	}

	data, err := c.source.ReadFile(key)
	if err != nil {
		return "", errors.New("E001").WithFile(key).Wrap(err)
	}

	c.mu.Lock()
	// A concurrent loader may have won; keep the first value.
	if existing, ok := c.entries[key]; ok {
		content = existing
	} else {
		content = string(data)
		c.entries[key] = content
	}
	c.mu.Unlock()

	return content, nil
}

// Exists reports whether path is cached or present in the source.
func (c *Cache) Exists(path string) bool {
	key := filepath.Clean(path)

	c.mu.RLock()
	_, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return true
	}
	return c.source.Exists(key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]string)
	c.mu.Unlock()
}
