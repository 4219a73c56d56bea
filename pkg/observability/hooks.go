// Package observability provides hooks for metrics, tracing, and logging.
//
// The encoder and loader emit events through these hooks without taking a
// dependency on any particular backend. Consumers register implementations
// once at startup; until then every hook is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLoaderHooks(&myLoaderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Loader().OnLoadStart(ctx, key)
//	// ... decode, decompress, activate ...
//	observability.Loader().OnLoadComplete(ctx, key, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Encoder Hooks
// =============================================================================

// EncoderHooks receives events from the build-time font encoder.
type EncoderHooks interface {
	// OnEncodeStart is called once the font directory has been scanned.
	OnEncodeStart(ctx context.Context, fontDir string, fileCount int)

	// OnEncodeFile is called after each file has been encoded.
	OnEncodeFile(ctx context.Context, rel string, encodedSize int, compressed bool, duration time.Duration)

	// OnEncodeComplete is called when the run finishes, successfully or not.
	OnEncodeComplete(ctx context.Context, fontCount int, duration time.Duration, err error)
}

// =============================================================================
// Loader Hooks
// =============================================================================

// LoaderHooks receives events from the run-time font loader.
type LoaderHooks interface {
	// OnLoadStart records a cache miss that starts materialisation.
	OnLoadStart(ctx context.Context, key string)

	// OnLoadComplete records the outcome of a materialisation.
	OnLoadComplete(ctx context.Context, key string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEncoderHooks is a no-op implementation of EncoderHooks.
type NoopEncoderHooks struct{}

func (NoopEncoderHooks) OnEncodeStart(context.Context, string, int)                     {}
func (NoopEncoderHooks) OnEncodeFile(context.Context, string, int, bool, time.Duration) {}
func (NoopEncoderHooks) OnEncodeComplete(context.Context, int, time.Duration, error)    {}

// NoopLoaderHooks is a no-op implementation of LoaderHooks.
type NoopLoaderHooks struct{}

func (NoopLoaderHooks) OnLoadStart(context.Context, string)                               {}
func (NoopLoaderHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	encoderHooks EncoderHooks = NoopEncoderHooks{}
	loaderHooks  LoaderHooks  = NoopLoaderHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetEncoderHooks registers custom encoder hooks.
// This should be called once at application startup.
func SetEncoderHooks(h EncoderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		encoderHooks = h
	}
}

// SetLoaderHooks registers custom loader hooks.
// This should be called once at application startup.
func SetLoaderHooks(h LoaderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loaderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Encoder returns the registered encoder hooks.
func Encoder() EncoderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return encoderHooks
}

// Loader returns the registered loader hooks.
func Loader() LoaderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loaderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	encoderHooks = NoopEncoderHooks{}
	loaderHooks = NoopLoaderHooks{}
	cacheHooks = NoopCacheHooks{}
}
