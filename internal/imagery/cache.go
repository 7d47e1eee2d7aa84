package imagery

import (
	"context"
	"image"
	"sync"
)

// CachedSource wraps a Source with a per-URL cache of decoded images.
// The underlying fetch is idempotent and read-only, so caching does not
// change observable check results; it just avoids refetching a task image
// once per qualifying annotation. Errors are not cached.
type CachedSource struct {
	src Source

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewCachedSource wraps src with an in-memory cache.
func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{src: src, cache: make(map[string]image.Image)}
}

// Fetch implements Source.
func (c *CachedSource) Fetch(ctx context.Context, url string) (image.Image, error) {
	c.mu.Lock()
	if img, ok := c.cache[url]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	img, err := c.src.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[url] = img
	c.mu.Unlock()
	return img, nil
}
