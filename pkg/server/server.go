// Package server serves loaded fonts over HTTP.
//
// The server exposes the loader's document font set as a stylesheet:
//
//	GET /fonts.css   @font-face rules for every active face
//	GET /blob/{id}   the materialised font bytes behind a face
//	GET /registry    registry metadata without payloads
//	GET /healthz     liveness probe
//	GET /version     build information
//
// [Preload] is the page-initialisation glue: it loads every registry entry
// and logs failures instead of returning them, so one bad font does not
// take the others down.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/veela/pkg/buildinfo"
	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/loader"
	"github.com/matzehuels/veela/pkg/registry"
	"github.com/matzehuels/veela/pkg/resource"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Server serves a loader's fonts.
type Server struct {
	loader   *loader.Loader
	registry registry.Provider
	logger   *log.Logger
	router   chi.Router
}

// New returns a server for l. reg backs the /registry endpoint.
func New(l *loader.Loader, reg registry.Provider, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{loader: l, registry: reg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))
	r.Get("/fonts.css", s.handleCSS)
	r.Get("/blob/{id}", s.handleBlob)
	r.Get("/registry", s.handleRegistry)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving fonts", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	err := s.loader.Fonts().WriteCSS(w, func(src string) string {
		if id := resource.ID(src); id != "" {
			return "/blob/" + id
		}
		return src
	})
	if err != nil {
		s.logger.Debug("write stylesheet", "error", err)
	}
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	blob, err := s.loader.Store().Get(resource.URL(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", blob.MIME)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = w.Write(blob.Data)
}

// registryEntry is the /registry view of one entry.
type registryEntry struct {
	Family     string          `json:"family"`
	Style      string          `json:"style"`
	Weight     fontmeta.Weight `json:"weight"`
	Compressed bool            `json:"compressed"`
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no registry configured"))
		return
	}
	reg, err := s.registry.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make(map[string]registryEntry, len(reg))
	for key, m := range reg {
		d := m.Descriptor()
		out[key] = registryEntry{Family: d.Family, Style: d.Style, Weight: d.Weight, Compressed: m.Compressed}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errors.ErrCodeNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, errors.UserMessage(err), status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}
