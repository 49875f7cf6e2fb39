package texture

import (
	"image"
	"sync"

	"mu-bmd-pose/internal/logging"
)

// Resolver resolves a texture name to a decoded image, or nil.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Failed loads are cached as nil.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

// NewCache creates a texture cache backed by index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	c.mu.RLock()
	img, hit := c.items[path]
	c.mu.RUnlock()
	if hit {
		return img
	}

	img, err := LoadTexture(path)
	if err != nil {
		logging.Logger().Warn("texture load failed", "texture", texName, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, hit := c.items[path]; hit {
		return cached
	}
	c.items[path] = img
	return img
}
