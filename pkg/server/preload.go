package server

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/veela/pkg/loader"
	"github.com/matzehuels/veela/pkg/registry"
)

// Preload loads every entry of the registry into l and returns the number
// of fonts activated. Failures are logged as warnings and never returned:
// an unavailable registry loads nothing, and a bad entry is skipped.
func Preload(ctx context.Context, l *loader.Loader, p registry.Provider, logger *log.Logger) int {
	if logger == nil {
		logger = log.Default()
	}
	reg, err := p.Load(ctx)
	if err != nil {
		logger.Warn("failed to load font registry", "error", err)
		return 0
	}

	loaded := 0
	for _, e := range reg.Entries() {
		if _, err := l.LoadFont(ctx, e.Metadata); err != nil {
			logger.Warn("failed to load font", "key", e.Key, "error", err)
			continue
		}
		loaded++
	}
	logger.Info("fonts loaded", "loaded", loaded, "total", len(reg))
	return loaded
}
