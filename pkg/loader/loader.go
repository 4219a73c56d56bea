package loader

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/veela/pkg/document"
	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/observability"
	"github.com/matzehuels/veela/pkg/registry"
	"github.com/matzehuels/veela/pkg/resource"
)

// Activator loads a constructed face before it joins the font set.
type Activator interface {
	Activate(ctx context.Context, face *document.FontFace) error
}

// ActivatorFunc adapts a function to the Activator interface.
type ActivatorFunc func(ctx context.Context, face *document.FontFace) error

// Activate calls f(ctx, face).
func (f ActivatorFunc) Activate(ctx context.Context, face *document.FontFace) error {
	return f(ctx, face)
}

// Loader materialises and activates fonts. A Loader is safe for
// concurrent use.
type Loader struct {
	cache      *Cache
	store      resource.Store
	fonts      *document.FontSet
	activator  Activator
	decompress Decompressor
	registry   registry.Provider
	logger     *log.Logger

	inflight singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithCache sets the session cache.
func WithCache(c *Cache) Option { return func(l *Loader) { l.cache = c } }

// WithStore sets the resource store.
func WithStore(s resource.Store) Option { return func(l *Loader) { l.store = s } }

// WithFontSet sets the document font set faces are added to.
func WithFontSet(fs *document.FontSet) Option { return func(l *Loader) { l.fonts = fs } }

// WithActivator replaces the default activation, which loads the face
// from the loader's store.
func WithActivator(a Activator) Option { return func(l *Loader) { l.activator = a } }

// WithDecompressor sets the decompressor for compressed payloads.
// Passing nil disables decompression, so compressed entries fail with
// COMPRESSION_UNSUPPORTED.
func WithDecompressor(d Decompressor) Option { return func(l *Loader) { l.decompress = d } }

// WithRegistry sets the registry used by LoadAllFonts and
// LoadFontsByFamily. The provider is memoised unless it already is one.
func WithRegistry(p registry.Provider) Option {
	return func(l *Loader) {
		if _, ok := p.(*registry.Memo); !ok && p != nil {
			p = registry.NewMemo(p)
		}
		l.registry = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option { return func(l *Loader) { l.logger = logger } }

// New returns a loader with an in-memory store, an empty font set, a
// fresh cache and gzip decompression.
func New(opts ...Option) *Loader {
	l := &Loader{
		decompress: Gzip,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cache == nil {
		l.cache = NewCache()
	}
	if l.store == nil {
		l.store = resource.NewMemoryStore()
	}
	if l.fonts == nil {
		l.fonts = document.NewFontSet()
	}
	if l.activator == nil {
		l.activator = ActivatorFunc(func(ctx context.Context, face *document.FontFace) error {
			return face.Load(ctx, l.store)
		})
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	return l
}

// Cache returns the loader's session cache.
func (l *Loader) Cache() *Cache { return l.cache }

// Store returns the resource store faces are bound to.
func (l *Loader) Store() resource.Store { return l.store }

// Fonts returns the document font set.
func (l *Loader) Fonts() *document.FontSet { return l.fonts }

// LoadFont activates the font described by m, or returns the cached face
// for its family-style-weight key. Concurrent calls for the same key
// share one materialisation. The shared load is not tied to any single
// caller's context: a caller whose ctx ends stops waiting and gets
// ctx.Err(), while the others still receive the face.
func (l *Loader) LoadFont(ctx context.Context, m fontmeta.Metadata) (*document.FontFace, error) {
	key := m.CacheKey()
	if face, ok := l.cache.Face(key); ok {
		observability.Cache().OnCacheHit(ctx, "face")
		return face, nil
	}
	observability.Cache().OnCacheMiss(ctx, "face")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shared := context.WithoutCancel(ctx)
	ch := l.inflight.DoChan(key, func() (any, error) {
		if face, ok := l.cache.Face(key); ok {
			return face, nil
		}
		return l.load(shared, key, m)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*document.FontFace), nil
	}
}

func (l *Loader) load(ctx context.Context, key string, m fontmeta.Metadata) (face *document.FontFace, err error) {
	start := time.Now()
	size := 0
	observability.Loader().OnLoadStart(ctx, key)
	defer func() {
		observability.Loader().OnLoadComplete(ctx, key, size, time.Since(start), err)
	}()

	d := m.Descriptor()
	if err := errors.ValidateFamily(d.Family); err != nil {
		return nil, err
	}

	url, ok := l.cache.URL(key)
	if ok {
		observability.Cache().OnCacheHit(ctx, "resource")
	} else {
		observability.Cache().OnCacheMiss(ctx, "resource")
		data, err := l.decode(m)
		if err != nil {
			return nil, err
		}
		size = len(data)

		mime := resource.MIMEWOFF2
		if m.Compressed {
			mime = resource.MIMEOctetStream
		}
		url, err = l.store.Create(data, mime)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "materialise %s", key)
		}
		l.cache.SetURL(key, url)
		observability.Cache().OnCacheSet(ctx, "resource", size)
		l.logger.Debug("materialised font", "key", key, "bytes", size, "mime", mime)
	}

	face = document.NewFontFace(d.Family, url, document.Descriptors{
		Style:   d.Style,
		Weight:  d.Weight.String(),
		Display: document.DisplaySwap,
	})
	if err := l.activator.Activate(ctx, face); err != nil {
		if isContextErr(err) {
			return nil, err
		}
		if !errors.Is(err, errors.ErrCodeActivationFailed) {
			err = errors.Wrap(errors.ErrCodeActivationFailed, err, "activate %s", key)
		}
		return nil, err
	}

	l.fonts.Add(face)
	l.cache.SetFace(key, face)
	return face, nil
}

func isContextErr(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}

func (l *Loader) decode(m fontmeta.Metadata) ([]byte, error) {
	data, err := decodeBase64(m.Base64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode base64 for %s", m.Family)
	}
	if !m.Compressed {
		return data, nil
	}
	return decompress(l.decompress, data)
}

// decodeBase64 decodes standard base64 the way a browser's atob does:
// ASCII whitespace is ignored and trailing padding is optional.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if len(s)%4 != 0 {
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	return base64.StdEncoding.DecodeString(s)
}

// LoadFonts loads every entry concurrently and returns the faces in input
// order. The first failure cancels the remaining loads and is returned.
func (l *Loader) LoadFonts(ctx context.Context, ms []fontmeta.Metadata) ([]*document.FontFace, error) {
	faces := make([]*document.FontFace, len(ms))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range ms {
		g.Go(func() error {
			face, err := l.LoadFont(ctx, m)
			if err != nil {
				return err
			}
			faces[i] = face
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return faces, nil
}

// LoadAllFonts loads every registry entry in key order.
func (l *Loader) LoadAllFonts(ctx context.Context) ([]*document.FontFace, error) {
	reg, err := l.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	return l.LoadFonts(ctx, reg.Values())
}

// LoadFontsByFamily loads the registry entries whose family equals family
// exactly.
func (l *Loader) LoadFontsByFamily(ctx context.Context, family string) ([]*document.FontFace, error) {
	reg, err := l.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	return l.LoadFonts(ctx, reg.ByFamily(family))
}

func (l *Loader) loadRegistry(ctx context.Context) (registry.Registry, error) {
	if l.registry == nil {
		return nil, errors.New(errors.ErrCodeRegistryLoadFailed, "no registry configured")
	}
	return l.registry.Load(ctx)
}

// ClearFontCache revokes every materialised resource URL and empties the
// cache. Faces already in the font set stay there. It is safe to call at
// any time.
func (l *Loader) ClearFontCache() {
	n := l.cache.Clear(l.store.Revoke)
	l.logger.Debug("cleared font cache", "released", n)
}
