package loader

import (
	"sync"

	"github.com/matzehuels/veela/pkg/document"
)

// Cache holds the loader's per-session state: materialised resource URLs
// and activated faces, both keyed by family-style-weight.
type Cache struct {
	mu    sync.Mutex
	urls  map[string]string
	faces map[string]*document.FontFace
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		urls:  make(map[string]string),
		faces: make(map[string]*document.FontFace),
	}
}

// URL returns the resource URL cached under key.
func (c *Cache) URL(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.urls[key]
	return url, ok
}

// SetURL caches a resource URL.
func (c *Cache) SetURL(key, url string) {
	c.mu.Lock()
	c.urls[key] = url
	c.mu.Unlock()
}

// Face returns the face cached under key.
func (c *Cache) Face(key string) (*document.FontFace, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.faces[key]
	return f, ok
}

// SetFace caches an activated face.
func (c *Cache) SetFace(key string, f *document.FontFace) {
	c.mu.Lock()
	c.faces[key] = f
	c.mu.Unlock()
}

// Len returns the number of cached URLs and faces.
func (c *Cache) Len() (urls, faces int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.urls), len(c.faces)
}

// Clear empties both caches and calls revoke for every cached URL.
// It returns the number of URLs released.
func (c *Cache) Clear(revoke func(url string)) int {
	c.mu.Lock()
	urls := c.urls
	c.urls = make(map[string]string)
	c.faces = make(map[string]*document.FontFace)
	c.mu.Unlock()

	if revoke != nil {
		for _, url := range urls {
			revoke(url)
		}
	}
	return len(urls)
}
