// Package cache stores encoded font payloads between encoder runs.
//
// Compressing and base64-encoding every font on every build is wasted work
// when the font directory has not changed. The encoder keys each payload by
// the SHA-256 of the source bytes plus the encoding options, so a hit is
// implicitly verified and never stale.
//
// Backends:
//   - [FileCache]: one JSON file per entry below an XDG cache directory
//   - [RedisCache]: shared cache for CI fleets
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLEncoded is how long encoded payloads are retained.
// Keys are content hashes, so expiry only bounds storage, not freshness.
const TTLEncoded = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
