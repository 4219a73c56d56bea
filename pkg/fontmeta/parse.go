package fontmeta

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultFamily is the family assumed by [DefaultParser].
const DefaultFamily = "Inter"

// DefaultParser recognises the Inter naming scheme.
var DefaultParser = NewParser(DefaultFamily)

// weightPattern finds the first weight name in a base name.
// Alternation order matters: leftmost match wins, so "ExtraBold" is found
// before "Bold" can match inside it.
var weightPattern = regexp.MustCompile(`(Thin|ExtraLight|Light|Regular|Medium|SemiBold|Bold|ExtraBold|Black)`)

var weightNames = map[string]int{
	"Thin":       100,
	"ExtraLight": 200,
	"Light":      300,
	"Regular":    400,
	"Medium":     500,
	"SemiBold":   600,
	"Bold":       700,
	"ExtraBold":  800,
	"Black":      900,
}

// Parser derives descriptors from filenames by convention.
type Parser struct {
	// Family is the default family, matched by the "<Family>-" prefix.
	Family string
	// Display marks the display cut, e.g. "InterDisplay".
	Display string
	// Variable marks the variable font, e.g. "InterVariable".
	Variable string
}

// NewParser returns a parser for family with the conventional
// "<family>Display" and "<family>Variable" markers.
func NewParser(family string) Parser {
	if family == "" {
		family = DefaultFamily
	}
	return Parser{
		Family:   family,
		Display:  family + "Display",
		Variable: family + "Variable",
	}
}

// Parse derives a descriptor with the default parser.
func Parse(path string) Descriptor {
	return DefaultParser.Parse(path)
}

// Parse derives the family, style and weight from the base name of path.
// Rules are tried in order: variable marker, display marker, default
// family prefix, then the generic fallback.
func (p Parser) Parse(path string) Descriptor {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	switch {
	case p.Variable != "" && strings.Contains(base, p.Variable):
		return Descriptor{Family: p.Variable, Style: parseStyle(base), Weight: Keyword(VariableRange)}
	case p.Display != "" && strings.Contains(base, p.Display):
		return Descriptor{Family: p.Display, Style: parseStyle(base), Weight: parseWeight(base)}
	case strings.HasPrefix(base, p.Family+"-"):
		return Descriptor{Family: p.Family, Style: parseStyle(base), Weight: parseWeight(base)}
	}
	return Descriptor{Family: p.Family, Style: StyleNormal, Weight: Keyword(WeightNormal)}
}

func parseStyle(base string) string {
	if strings.Contains(base, "Italic") {
		return StyleItalic
	}
	return StyleNormal
}

func parseWeight(base string) Weight {
	if m := weightPattern.FindString(base); m != "" {
		return Numeric(weightNames[m])
	}
	return Numeric(DefaultWeight)
}
