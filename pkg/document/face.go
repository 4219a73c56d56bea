package document

import (
	"context"
	"fmt"
	"sync"

	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/resource"
)

// Status is the load state of a [FontFace].
type Status string

// Font face load states.
const (
	StatusUnloaded Status = "unloaded"
	StatusLoading  Status = "loading"
	StatusLoaded   Status = "loaded"
	StatusError    Status = "error"
)

// DisplaySwap is the font-display policy used for every face.
const DisplaySwap = "swap"

// Descriptors are the CSS descriptors of a font face.
type Descriptors struct {
	Style   string
	Weight  string
	Display string
}

// Fetcher resolves a face's source URL to bytes. [resource.Store]
// satisfies it.
type Fetcher interface {
	Get(url string) (resource.Blob, error)
}

// FontFace is a font bound to a family name and a source URL.
type FontFace struct {
	Family string
	Source string
	Descriptors

	mu     sync.Mutex
	status Status
	info   Info
	err    error
}

// NewFontFace returns an unloaded face. Empty descriptors default to
// normal style, normal weight and swap display.
func NewFontFace(family, source string, d Descriptors) *FontFace {
	if d.Style == "" {
		d.Style = "normal"
	}
	if d.Weight == "" {
		d.Weight = "normal"
	}
	if d.Display == "" {
		d.Display = DisplaySwap
	}
	return &FontFace{Family: family, Source: source, Descriptors: d, status: StatusUnloaded}
}

// Load fetches and validates the face's bytes. Loading an already
// settled face returns the previous outcome without fetching again.
// Failures carry FONT_ACTIVATION_FAILED.
func (f *FontFace) Load(ctx context.Context, fetch Fetcher) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.status {
	case StatusLoaded:
		return nil
	case StatusError:
		return f.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.status = StatusLoading
	info, err := f.load(fetch)
	if err != nil {
		f.status, f.err = StatusError, err
		return err
	}
	f.status, f.info = StatusLoaded, info
	return nil
}

func (f *FontFace) load(fetch Fetcher) (Info, error) {
	if f.Family == "" {
		return Info{}, errors.New(errors.ErrCodeActivationFailed, "font face has no family")
	}
	blob, err := fetch.Get(f.Source)
	if err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeActivationFailed, err, "fetch %s", f.Source)
	}
	info, err := Validate(blob.Data)
	if err != nil {
		return info, errors.Wrap(errors.ErrCodeActivationFailed, err, "load %s", f)
	}
	return info, nil
}

// Status returns the current load state.
func (f *FontFace) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err returns the load error, if the face failed to load.
func (f *FontFace) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Info returns what Load learned about the font bytes. It is the zero
// value until the face has loaded.
func (f *FontFace) Info() Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.info
}

// String identifies the face by family, style and weight.
func (f *FontFace) String() string {
	return fmt.Sprintf("%s %s %s", f.Family, f.Style, f.Weight)
}
