// Package resource loads game data files and memoizes what it reads.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
)

// ErrNotFound is returned when a resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Cache reads files from a filesystem once and serves later requests from memory.
type Cache struct {
	mu      sync.Mutex
	fsys    fs.FS
	bytes   map[string][]byte
	decoded map[string]any
}

// NewCache is rooted at an arbitrary filesystem.
func NewCache(fsys fs.FS) *Cache {
	return &Cache{
		fsys:    fsys,
		bytes:   make(map[string][]byte),
		decoded: make(map[string]any),
	}
}

// Dir is a cache rooted at a directory on disk.
func Dir(root string) *Cache {
	return NewCache(os.DirFS(root))
}

// Bytes returns the contents of name. The returned slice is shared between
// callers and must not be modified.
func (c *Cache) Bytes(name string) ([]byte, error) {
	name = path.Clean(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.bytes[name]; ok {
		return data, nil
	}
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	c.bytes[name] = data
	return data, nil
}

// Load decodes name with decode once and memoizes the result. Failed decodes
// are not cached.
func Load[T any](c *Cache, name string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	name = path.Clean(name)

	c.mu.Lock()
	v, ok := c.decoded[name]
	c.mu.Unlock()
	if ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
		return zero, fmt.Errorf("resource %s already loaded as %T", name, v)
	}

	data, err := c.Bytes(name)
	if err != nil {
		return zero, err
	}
	t, err := decode(data)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", name, err)
	}

	c.mu.Lock()
	c.decoded[name] = t
	c.mu.Unlock()
	return t, nil
}
