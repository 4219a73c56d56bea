package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// EncodeKeyOpts are the encoder settings that change the stored payload.
type EncodeKeyOpts struct {
	Compress bool `json:"compress"`
	Level    int  `json:"level"`
}

// Keyer derives cache keys.
type Keyer interface {
	// EncodeKey returns the key for a font payload with the given
	// content hash encoded with opts.
	EncodeKey(contentHash string, opts EncodeKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// EncodeKey returns "encode:<sha256(hash, opts)>".
func (DefaultKeyer) EncodeKey(contentHash string, opts EncodeKeyOpts) string {
	return hashKey("encode", contentHash, opts)
}
