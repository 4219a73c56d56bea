package registry

import (
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
)

var (
	tsExport = regexp.MustCompile(`export\s+const\s+fontRegistry\b[^=]*=\s*\{`)
	tsEntry  = regexp.MustCompile(`'([^']*)'\s*:\s*\{\s*` +
		`base64\s*:\s*'([^']*)'\s*,\s*` +
		`family\s*:\s*'([^']*)'\s*,\s*` +
		`style\s*:\s*'([^']*)'\s*,\s*` +
		`weight\s*:\s*('[^']*'|\d+)\s*,\s*` +
		`compressed\s*:\s*(true|false)\s*\}`)
)

// Read parses a registry in the given format and returns its entries.
// TypeScript entries keep their file order; JSON entries are sorted by key.
func Read(r io.Reader, format Format) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatTS, "":
		return readTS(string(data))
	case FormatJSON:
		return readJSON(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown registry format %q", format)
}

func readTS(src string) ([]Entry, error) {
	loc := tsExport.FindStringIndex(src)
	if loc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no fontRegistry export found")
	}
	body := src[loc[1]:]

	var entries []Entry
	seen := make(map[string]bool)
	for _, m := range tsEntry.FindAllStringSubmatch(body, -1) {
		key := m[1]
		if seen[key] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate registry key %q", key)
		}
		seen[key] = true

		var weight fontmeta.Weight
		if strings.HasPrefix(m[5], "'") {
			weight = fontmeta.Keyword(strings.Trim(m[5], "'"))
		} else {
			n, err := strconv.Atoi(m[5])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "weight of %q", key)
			}
			weight = fontmeta.Numeric(n)
		}

		entries = append(entries, Entry{
			Key: key,
			Metadata: fontmeta.Metadata{
				Base64:     m[2],
				Family:     m[3],
				Style:      m[4],
				Weight:     weight,
				Compressed: m[6] == "true",
			},
		})
	}
	return entries, nil
}

func readJSON(data []byte) ([]Entry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse registry JSON")
	}
	return r.Entries(), nil
}
