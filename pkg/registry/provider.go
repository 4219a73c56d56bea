package registry

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/veela/pkg/errors"
)

// Provider supplies the registry to loaders.
type Provider interface {
	Load(ctx context.Context) (Registry, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Registry, error)

// Load calls f(ctx).
func (f ProviderFunc) Load(ctx context.Context) (Registry, error) {
	return f(ctx)
}

// Static returns a provider serving an in-memory registry.
func Static(r Registry) Provider {
	return ProviderFunc(func(context.Context) (Registry, error) {
		return r, nil
	})
}

// FileProvider loads a generated registry file from disk.
type FileProvider struct {
	Path   string
	Format Format // derived from Path when empty
}

// Load reads and parses the registry file.
func (p FileProvider) Load(ctx context.Context) (Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format := p.Format
	if format == "" {
		format = FormatFromPath(p.Path)
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryLoadFailed, err, "open registry")
	}
	defer f.Close()

	entries, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryLoadFailed, err, "read registry %s", p.Path)
	}
	return FromEntries(entries), nil
}

// Memo loads the registry from an inner provider on first use and serves
// the cached result afterwards. Concurrent first callers share one load.
// Failed loads are not cached, so a later call retries.
type Memo struct {
	inner Provider
	group singleflight.Group

	mu     sync.RWMutex
	reg    Registry
	loaded bool
}

// NewMemo wraps p.
func NewMemo(p Provider) *Memo {
	return &Memo{inner: p}
}

// Load returns the memoised registry, loading it if necessary. A caller
// whose ctx ends stops waiting without failing the shared load.
func (m *Memo) Load(ctx context.Context) (Registry, error) {
	m.mu.RLock()
	if m.loaded {
		reg := m.reg
		m.mu.RUnlock()
		return reg, nil
	}
	m.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan("registry", func() (any, error) {
		m.mu.RLock()
		if m.loaded {
			defer m.mu.RUnlock()
			return m.reg, nil
		}
		m.mu.RUnlock()

		reg, err := m.inner.Load(shared)
		if err != nil {
			if !errors.Is(err, errors.ErrCodeRegistryLoadFailed) {
				err = errors.Wrap(errors.ErrCodeRegistryLoadFailed, err, "load registry")
			}
			return nil, err
		}
		m.mu.Lock()
		m.reg, m.loaded = reg, true
		m.mu.Unlock()
		return reg, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Registry), nil
	}
}

// Loaded reports whether the registry has been loaded.
func (m *Memo) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}
