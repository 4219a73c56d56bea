package registry

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/veela/pkg/fontmeta"
)

// Registry maps derived keys to font metadata.
// A registry is generated wholesale and never patched; treat it as
// read-only once loaded.
type Registry map[string]fontmeta.Metadata

// Entry is one key/metadata pair in generation order.
type Entry struct {
	Key      string
	Metadata fontmeta.Metadata
}

// FromEntries builds a registry from ordered entries.
func FromEntries(entries []Entry) Registry {
	r := make(Registry, len(entries))
	for _, e := range entries {
		r[e.Key] = e.Metadata
	}
	return r
}

// Keys returns the registry keys in sorted order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns all entries sorted by key.
func (r Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r))
	for _, k := range r.Keys() {
		entries = append(entries, Entry{Key: k, Metadata: r[k]})
	}
	return entries
}

// Values returns all metadata sorted by key.
func (r Registry) Values() []fontmeta.Metadata {
	values := make([]fontmeta.Metadata, 0, len(r))
	for _, k := range r.Keys() {
		values = append(values, r[k])
	}
	return values
}

// ByFamily returns the metadata whose family equals family exactly,
// sorted by key.
func (r Registry) ByFamily(family string) []fontmeta.Metadata {
	var values []fontmeta.Metadata
	for _, k := range r.Keys() {
		if m := r[k]; m.Family == family {
			values = append(values, m)
		}
	}
	return values
}

// Families returns the distinct family names in sorted order.
func (r Registry) Families() []string {
	seen := make(map[string]bool)
	var families []string
	for _, m := range r {
		if !seen[m.Family] {
			seen[m.Family] = true
			families = append(families, m.Family)
		}
	}
	sort.Strings(families)
	return families
}

// Format selects the registry file format.
type Format string

// Supported registry formats.
const (
	FormatTS   Format = "ts"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
// ".json" selects JSON; everything else is the TypeScript module.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTS
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case FormatTS:
		return FormatTS, true
	case FormatJSON:
		return FormatJSON, true
	}
	return "", false
}
