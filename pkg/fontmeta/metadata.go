package fontmeta

import (
	"fmt"

	"github.com/matzehuels/veela/pkg/errors"
)

// Font styles produced by the filename parser.
const (
	StyleNormal = "normal"
	StyleItalic = "italic"
)

// Descriptor is the family/style/weight triple that identifies a face.
type Descriptor struct {
	Family string
	Style  string
	Weight Weight
}

// Metadata describes one loadable font face.
type Metadata struct {
	// Base64 is the font payload, compressed when Compressed is set.
	Base64 string `json:"base64"`
	// Family is the CSS font-family name.
	Family string `json:"family"`
	// Style is the CSS font-style, "normal" or "italic".
	Style string `json:"style"`
	// Weight is a number in [100,900], a keyword, or "100 900".
	Weight Weight `json:"weight"`
	// Compressed marks payloads that must be decompressed before use.
	Compressed bool `json:"compressed"`
}

// Descriptor returns the face triple with defaults applied.
func (m Metadata) Descriptor() Descriptor {
	style := m.Style
	if style == "" {
		style = StyleNormal
	}
	return Descriptor{
		Family: m.Family,
		Style:  style,
		Weight: m.Weight.Or(Keyword(WeightNormal)),
	}
}

// CacheKey returns the composite "family-style-weight" key under which
// loaders cache resources and faces.
func (m Metadata) CacheKey() string {
	return m.Descriptor().Key()
}

// Key returns the composite "family-style-weight" key.
func (d Descriptor) Key() string {
	return fmt.Sprintf("%s-%s-%s", d.Family, d.Style, d.Weight)
}

// Validate checks the invariants a registry entry must hold.
func (m Metadata) Validate() error {
	if err := errors.ValidateFamily(m.Family); err != nil {
		return err
	}
	if m.Style == "" {
		return errors.New(errors.ErrCodeInvalidInput, "font style cannot be empty")
	}
	if m.Weight.IsNumeric() && (m.Weight.Int() < 1 || m.Weight.Int() > 1000) {
		return errors.New(errors.ErrCodeInvalidInput, "font weight %d out of range [1,1000]", m.Weight.Int())
	}
	return nil
}

// Apply returns d with every set field of o replacing its own.
func (d Descriptor) Apply(o Descriptor) Descriptor {
	if o.Family != "" {
		d.Family = o.Family
	}
	if o.Style != "" {
		d.Style = o.Style
	}
	if !o.Weight.IsZero() {
		d.Weight = o.Weight
	}
	return d
}
