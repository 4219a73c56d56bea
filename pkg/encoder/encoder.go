package encoder

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/veela/pkg/cache"
	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/observability"
	"github.com/matzehuels/veela/pkg/registry"
	"github.com/matzehuels/veela/pkg/scan"
)

// CompressionLevel is the gzip level used for every compressed payload.
const CompressionLevel = gzip.BestCompression

// Options configures an encode run.
type Options struct {
	FontDir  string // directory scanned for fonts
	Output   string // registry file to write
	Compress bool   // gzip files that are not already WOFF2

	// Parser derives metadata from filenames. The zero value uses
	// fontmeta.DefaultParser.
	Parser fontmeta.Parser

	// Overrides replace parsed metadata, keyed by slash-separated path
	// relative to FontDir.
	Overrides map[string]fontmeta.Descriptor

	Format     registry.Format // derived from Output when empty
	TypeImport string          // registry.DefaultTypeImport when empty

	// Cache stores encoded payloads between runs. Nil disables caching.
	Cache cache.Cache
	Keyer cache.Keyer

	Logger *log.Logger
}

// Result summarises an encode run.
type Result struct {
	Entries   []registry.Entry
	Output    string
	Written   bool // false when no fonts were found
	CacheHits int
	Duration  time.Duration
}

// Encoder runs the encode pipeline.
type Encoder struct {
	opts   Options
	logger *log.Logger
}

// New returns an encoder for opts, filling in defaults.
func New(opts Options) *Encoder {
	if opts.Parser == (fontmeta.Parser{}) {
		opts.Parser = fontmeta.DefaultParser
	}
	if opts.Format == "" {
		opts.Format = registry.FormatFromPath(opts.Output)
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Encoder{opts: opts, logger: logger}
}

// Encode scans the font directory, encodes every font and writes the
// registry. Nothing is written unless every file encodes.
func (e *Encoder) Encode(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	res = &Result{Output: e.opts.Output}
	defer func() {
		res.Duration = time.Since(start)
		observability.Encoder().OnEncodeComplete(ctx, len(res.Entries), res.Duration, err)
	}()

	if e.opts.Output == "" {
		return res, errors.New(errors.ErrCodeInvalidInput, "output path is required")
	}

	e.logger.Info("scanning font directory", "dir", e.opts.FontDir)
	files, err := scan.Fonts(e.opts.FontDir)
	if err != nil {
		return res, err
	}
	e.logger.Info("found font files", "count", len(files))
	observability.Encoder().OnEncodeStart(ctx, e.opts.FontDir, len(files))

	if len(files) == 0 {
		e.logger.Warn("no font files found, registry not written", "dir", e.opts.FontDir)
		return res, nil
	}

	root, err := filepath.Abs(e.opts.FontDir)
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeScanFailed, err, "resolve %s", e.opts.FontDir)
	}

	entries := make([]registry.Entry, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		entry, hit, err := e.encodeFile(ctx, root, path)
		if err != nil {
			return res, err
		}
		if prev, ok := seen[entry.Key]; ok {
			return res, errors.New(errors.ErrCodeEncodeFailed, "%s and %s both map to key %q", prev, path, entry.Key)
		}
		seen[entry.Key] = path
		if hit {
			res.CacheHits++
		}
		entries = append(entries, entry)
	}

	err = registry.WriteFile(e.opts.Output, entries, registry.WriteOptions{
		Format:     e.opts.Format,
		TypeImport: e.opts.TypeImport,
	})
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeEncodeFailed, err, "write registry %s", e.opts.Output)
	}
	res.Entries = entries
	res.Written = true
	e.logger.Info("generated font registry", "fonts", len(entries), "output", e.opts.Output)
	return res, nil
}

// encodeFile encodes one font. It reports whether the payload came from
// the cache.
func (e *Encoder) encodeFile(ctx context.Context, root, path string) (registry.Entry, bool, error) {
	start := time.Now()
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return registry.Entry{}, false, errors.Wrap(errors.ErrCodeEncodeFailed, err, "relative path of %s", path)
	}
	rel = filepath.ToSlash(rel)
	e.logger.Debug("processing", "file", rel)

	desc := e.opts.Parser.Parse(path)
	if o, ok := e.opts.Overrides[rel]; ok {
		desc = desc.Apply(o)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Entry{}, false, errors.Wrap(errors.ErrCodeEncodeFailed, err, "read %s", rel)
	}

	compress := e.opts.Compress && !isWOFF2(path)
	key := e.opts.Keyer.EncodeKey(cache.Hash(data), cache.EncodeKeyOpts{Compress: compress, Level: CompressionLevel})

	payload, hit := e.cached(ctx, key)
	if !hit {
		raw := data
		if compress {
			if raw, err = compressFile(path); err != nil {
				return registry.Entry{}, false, errors.Wrap(errors.ErrCodeEncodeFailed, err, "compress %s", rel)
			}
		}
		payload = base64.StdEncoding.EncodeToString(raw)
		if err := e.opts.Cache.Set(ctx, key, []byte(payload), cache.TTLEncoded); err != nil {
			e.logger.Warn("cache write failed", "file", rel, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "encode", len(payload))
		}
	}

	entry := registry.Entry{
		Key: DeriveKey(rel),
		Metadata: fontmeta.Metadata{
			Base64:     payload,
			Family:     desc.Family,
			Style:      desc.Style,
			Weight:     desc.Weight,
			Compressed: compress,
		},
	}
	if err := entry.Metadata.Validate(); err != nil {
		return registry.Entry{}, false, errors.Wrap(errors.ErrCodeEncodeFailed, err, "metadata for %s", rel)
	}

	e.logger.Info("encoded", "file", rel, "key", entry.Key, "compressed", compress, "cached", hit)
	observability.Encoder().OnEncodeFile(ctx, rel, len(payload), compress, time.Since(start))
	return entry, hit, nil
}

func (e *Encoder) cached(ctx context.Context, key string) (string, bool) {
	data, ok, err := e.opts.Cache.Get(ctx, key)
	if err != nil {
		e.logger.Debug("cache read failed", "error", err)
		return "", false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "encode")
		return "", false
	}
	observability.Cache().OnCacheHit(ctx, "encode")
	return string(data), true
}

// newGzipWriter opens the compressor used by compressFile.
var newGzipWriter = func(w io.Writer, level int) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, level)
}

// compressFile gzips path into a temporary file and returns the
// compressed bytes. The temporary file lives in the system temp directory
// and is removed on every path.
func compressFile(path string) ([]byte, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", filepath.Base(path)+".*.gz")
	if err != nil {
		return nil, err
	}
	defer os.Remove(dst.Name())
	defer dst.Close()

	zw, err := newGzipWriter(dst, CompressionLevel)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(zw, src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	if err := dst.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(dst.Name())
}

func isWOFF2(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".woff2")
}

var keyExt = regexp.MustCompile(`(?i)\.(woff2?|gz)$`)

// DeriveKey maps a path relative to the font directory to its registry
// key: separators become underscores and one trailing .woff, .woff2 or
// .gz extension is removed.
func DeriveKey(rel string) string {
	key := strings.NewReplacer("/", "_", `\`, "_").Replace(rel)
	return keyExt.ReplaceAllString(key, "")
}
