package encoder

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/registry"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "veela.toml"

// Config is the on-disk encoder configuration.
//
//	font_dir = "fonts"
//	output   = "src/ts/font-registry.ts"
//	compress = true
//
//	[fonts."brand/Logo.woff"]
//	family = "Brand"
//	weight = 800
type Config struct {
	FontDir    string                  `toml:"font_dir"`
	Output     string                  `toml:"output"`
	Compress   bool                    `toml:"compress"`
	Format     string                  `toml:"format"`
	Family     string                  `toml:"family"`
	TypeImport string                  `toml:"type_import"`
	Fonts      map[string]FontOverride `toml:"fonts"`
}

// FontOverride replaces parsed metadata for one file. Empty fields keep
// the parsed value.
type FontOverride struct {
	Family string          `toml:"family"`
	Style  string          `toml:"style"`
	Weight fontmeta.Weight `toml:"weight"`
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks format names and override entries.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, ok := registry.ParseFormat(c.Format); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown format %q (want ts or json)", c.Format)
		}
	}
	if c.Family != "" {
		if err := errors.ValidateFamily(c.Family); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "family")
		}
	}
	for _, rel := range sortedKeys(c.Fonts) {
		if err := errors.ValidateRelativePath(rel); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "fonts.%q", rel)
		}
		o := c.Fonts[rel]
		if o.Family != "" {
			if err := errors.ValidateFamily(o.Family); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "fonts.%q", rel)
			}
		}
		if n := o.Weight.Int(); o.Weight.IsNumeric() && (n < 1 || n > 1000) {
			return errors.New(errors.ErrCodeInvalidConfig, "fonts.%q: weight %d out of range", rel, n)
		}
	}
	return nil
}

// Overrides converts the override table to descriptors keyed by
// slash-separated relative path.
func (c *Config) Overrides() map[string]fontmeta.Descriptor {
	if len(c.Fonts) == 0 {
		return nil
	}
	out := make(map[string]fontmeta.Descriptor, len(c.Fonts))
	for rel, o := range c.Fonts {
		out[rel] = fontmeta.Descriptor{Family: o.Family, Style: o.Style, Weight: o.Weight}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
