package fontmeta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Weight is a CSS font-weight value: a number, a keyword, or a
// space-separated range for variable fonts.
// The zero value means "unset".
type Weight struct {
	n int
	s string
}

// Weight keywords and ranges produced by the filename parser.
const (
	// WeightNormal is the fallback keyword for unrecognised filenames.
	WeightNormal = "normal"

	// VariableRange is the full weight axis of a variable font.
	VariableRange = "100 900"

	// DefaultWeight applies when a weight name is expected but absent.
	DefaultWeight = 400
)

// Numeric returns a numeric weight such as 400 or 700.
func Numeric(n int) Weight { return Weight{n: n} }

// Keyword returns a string weight such as "normal" or "bold".
func Keyword(s string) Weight { return Weight{s: s} }

// Range returns the two-token weight range of a variable font.
func Range(lo, hi int) Weight { return Weight{s: fmt.Sprintf("%d %d", lo, hi)} }

// IsZero reports whether the weight is unset.
func (w Weight) IsZero() bool { return w.n == 0 && w.s == "" }

// IsNumeric reports whether the weight is a single number.
func (w Weight) IsNumeric() bool { return w.n != 0 }

// IsRange reports whether the weight is a two-token range.
func (w Weight) IsRange() bool { return w.n == 0 && len(strings.Fields(w.s)) == 2 }

// Int returns the numeric weight, or 0 when the weight is not numeric.
func (w Weight) Int() int { return w.n }

// String returns the CSS form of the weight. Numeric weights are
// coerced to their decimal string.
func (w Weight) String() string {
	if w.n != 0 {
		return strconv.Itoa(w.n)
	}
	return w.s
}

// Or returns w, or def when w is unset.
func (w Weight) Or(def Weight) Weight {
	if w.IsZero() {
		return def
	}
	return w
}

// MarshalJSON encodes numeric weights as numbers and others as strings.
func (w Weight) MarshalJSON() ([]byte, error) {
	if w.n != 0 {
		return []byte(strconv.Itoa(w.n)), nil
	}
	return json.Marshal(w.s)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (w *Weight) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = Keyword(s)
		return nil
	}
	if string(data) == "null" {
		*w = Weight{}
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("font weight must be a number or string, got %s", data)
	}
	*w = Numeric(n)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler so override tables may write
// either weight = 700 or weight = "100 900".
func (w *Weight) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		*w = Numeric(int(v))
	case string:
		*w = Keyword(v)
	default:
		return fmt.Errorf("font weight must be an integer or string, got %T", v)
	}
	return nil
}
