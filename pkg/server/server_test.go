package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/veela/internal/fonttest"
	"github.com/matzehuels/veela/pkg/buildinfo"
	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/loader"
	"github.com/matzehuels/veela/pkg/registry"
	"github.com/matzehuels/veela/pkg/resource"
)

func entry(family string, weight int, data []byte) fontmeta.Metadata {
	return fontmeta.Metadata{
		Base64: base64.StdEncoding.EncodeToString(data),
		Family: family,
		Style:  fontmeta.StyleNormal,
		Weight: fontmeta.Numeric(weight),
	}
}

func testRegistry() registry.Registry {
	return registry.Registry{
		"Inter-Bold":    entry("Inter", 700, fonttest.WOFF2(96, 1)),
		"Inter-Regular": entry("Inter", 400, fonttest.WOFF2(96, 2)),
		"Broken":        entry("Broken", 400, []byte("not a font")),
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *loader.Loader, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.New(&logs)
	p := registry.Static(testRegistry())
	l := loader.New(loader.WithRegistry(p), loader.WithLogger(logger))

	if n := Preload(context.Background(), l, p, logger); n != 2 {
		t.Fatalf("Preload() = %d, want 2", n)
	}
	ts := httptest.NewServer(New(l, p, logger).Handler())
	t.Cleanup(ts.Close)
	return ts, l, &logs
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestPreloadWarnsAndContinues(t *testing.T) {
	_, l, logs := newTestServer(t)
	if l.Fonts().Len() != 2 {
		t.Errorf("font set has %d faces, want 2", l.Fonts().Len())
	}
	if !strings.Contains(logs.String(), "failed to load font") || !strings.Contains(logs.String(), "Broken") {
		t.Errorf("expected a warning for the broken font:\n%s", logs.String())
	}
}

func TestPreloadRegistryFailure(t *testing.T) {
	var logs bytes.Buffer
	failing := registry.ProviderFunc(func(context.Context) (registry.Registry, error) {
		return nil, stderrors.New("missing module")
	})
	if n := Preload(context.Background(), loader.New(), failing, log.New(&logs)); n != 0 {
		t.Errorf("Preload() = %d, want 0", n)
	}
	if !strings.Contains(logs.String(), "failed to load font registry") {
		t.Errorf("expected a registry warning:\n%s", logs.String())
	}
}

func TestFontsCSSAndBlobs(t *testing.T) {
	ts, l, _ := newTestServer(t)

	resp, css := get(t, ts.URL+"/fonts.css")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /fonts.css status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	if n := strings.Count(string(css), "@font-face"); n != 2 {
		t.Errorf("stylesheet has %d rules, want 2:\n%s", n, css)
	}

	links := regexp.MustCompile(`url\((/blob/[^)]+)\)`).FindAllStringSubmatch(string(css), -1)
	if len(links) != 2 {
		t.Fatalf("found %d blob links", len(links))
	}
	for _, m := range links {
		resp, body := get(t, ts.URL+m[1])
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status %d", m[1], resp.StatusCode)
			continue
		}
		if ct := resp.Header.Get("Content-Type"); ct != resource.MIMEWOFF2 {
			t.Errorf("GET %s Content-Type = %q", m[1], ct)
		}
		if string(body[:4]) != "wOF2" {
			t.Errorf("GET %s returned non-font bytes", m[1])
		}
	}

	l.ClearFontCache()
	resp, _ = get(t, ts.URL+links[0][1])
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("revoked blob status %d, want 404", resp.StatusCode)
	}
}

func TestRegistryEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/registry")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /registry status %d", resp.StatusCode)
	}
	if bytes.Contains(body, []byte("base64")) {
		t.Error("/registry leaked payloads")
	}

	var got map[string]struct {
		Family string `json:"family"`
		Weight any    `json:"weight"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got["Inter-Bold"].Family != "Inter" || got["Inter-Bold"].Weight != float64(700) {
		t.Errorf("/registry = %+v", got)
	}
}

func TestVersionEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, body := get(t, ts.URL+"/version")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /version status %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Server"); got != buildinfo.UserAgent() {
		t.Errorf("Server header = %q, want %q", got, buildinfo.UserAgent())
	}
	var info buildinfo.Info
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatal(err)
	}
	if info != buildinfo.Get() {
		t.Errorf("/version = %+v, want %+v", info, buildinfo.Get())
	}
}

func TestNotFound(t *testing.T) {
	ts, _, _ := newTestServer(t)
	for _, path := range []string{"/blob/unknown", "/nope"} {
		resp, _ := get(t, ts.URL+path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s status %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(loader.New(), nil, log.New(io.Discard))

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() error = %v", err)
	}
}
