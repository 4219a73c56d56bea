package encoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
font_dir = "fonts"
output   = "src/ts/font-registry.ts"
compress = true
format   = "ts"

[fonts."brand/Logo.woff"]
family = "Brand"
weight = 800

[fonts."InterVariable.woff2"]
style  = "italic"
weight = "100 900"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.FontDir != "fonts" || cfg.Output != "src/ts/font-registry.ts" || !cfg.Compress {
		t.Errorf("LoadConfig() = %+v", cfg)
	}

	overrides := cfg.Overrides()
	if got := overrides["brand/Logo.woff"]; got.Family != "Brand" || got.Weight != fontmeta.Numeric(800) {
		t.Errorf("brand override = %+v", got)
	}
	if got := overrides["InterVariable.woff2"]; got.Style != "italic" || got.Weight.String() != fontmeta.VariableRange {
		t.Errorf("variable override = %+v", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":     `fontdir = "fonts"`,
		"bad syntax":      `font_dir = `,
		"bad format":      `format = "yaml"`,
		"absolute path":   "[fonts.\"/etc/Inter.woff2\"]\nfamily = \"Inter\"",
		"traversal":       "[fonts.\"../Inter.woff2\"]\nfamily = \"Inter\"",
		"unknown nested":  "[fonts.\"Inter.woff2\"]\nfamilly = \"Inter\"",
		"weight range":    "[fonts.\"Inter.woff2\"]\nweight = 5000",
		"quoted family":   `family = "It's"`,
		"weight bad type": "[fonts.\"Inter.woff2\"]\nweight = true",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("LoadConfig() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("LoadConfig() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}
