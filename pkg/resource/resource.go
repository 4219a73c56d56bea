// Package resource materialises font bytes as addressable in-memory blobs.
//
// A [Store] hands out opaque URLs for byte slices, the way a browser hands
// out object URLs for blobs. The loader registers decoded font payloads in
// a store and binds font faces to the returned URLs; revoking a URL
// releases the bytes.
package resource

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/veela/pkg/errors"
)

// MIME types used for font payloads.
const (
	MIMEWOFF2       = "font/woff2"
	MIMEOctetStream = "application/octet-stream"
)

// URLPrefix prefixes every URL issued by [MemoryStore].
const URLPrefix = "blob:veela/"

// Blob is a materialised byte sequence and its content type.
type Blob struct {
	Data []byte
	MIME string
}

// Store creates and releases blob URLs.
type Store interface {
	// Create registers data and returns a URL that resolves to it.
	Create(data []byte, mime string) (string, error)
	// Get resolves a URL. It returns a NOT_FOUND error for unknown or
	// revoked URLs.
	Get(url string) (Blob, error)
	// Revoke releases the blob behind url. Revoking an unknown URL is a
	// no-op.
	Revoke(url string)
}

// MemoryStore is a thread-safe in-process [Store].
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob)}
}

// Create stores data under a fresh blob:veela/<uuid> URL.
// The store keeps its own reference to data; callers must not mutate it.
func (s *MemoryStore) Create(data []byte, mime string) (string, error) {
	if mime == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "blob MIME type cannot be empty")
	}
	url := URLPrefix + uuid.NewString()

	s.mu.Lock()
	s.blobs[url] = Blob{Data: data, MIME: mime}
	s.mu.Unlock()
	return url, nil
}

// Get resolves url.
func (s *MemoryStore) Get(url string) (Blob, error) {
	s.mu.RLock()
	b, ok := s.blobs[url]
	s.mu.RUnlock()
	if !ok {
		return Blob{}, errors.New(errors.ErrCodeNotFound, "blob %s not found", url)
	}
	return b, nil
}

// Revoke releases url.
func (s *MemoryStore) Revoke(url string) {
	s.mu.Lock()
	delete(s.blobs, url)
	s.mu.Unlock()
}

// Len reports the number of live blobs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// ID returns the trailing identifier of a blob URL, suitable for use in
// an HTTP path. It returns "" when url was not issued by a MemoryStore.
func ID(url string) string {
	id, ok := strings.CutPrefix(url, URLPrefix)
	if !ok {
		return ""
	}
	return id
}

// URL is the inverse of [ID].
func URL(id string) string {
	return URLPrefix + id
}
