package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can
// share one Redis instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "veela:myapp:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// EncodeKey generates a prefixed key for an encoded payload.
func (k *ScopedKeyer) EncodeKey(contentHash string, opts EncodeKeyOpts) string {
	return k.prefix + k.inner.EncodeKey(contentHash, opts)
}
