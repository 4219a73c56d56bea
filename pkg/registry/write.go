package registry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/veela/pkg/errors"
	"github.com/matzehuels/veela/pkg/fontmeta"
)

// DefaultTypeImport is the module the generated TypeScript file imports
// the FontMetadata type from.
const DefaultTypeImport = "./font-loader"

// WriteOptions configures registry output.
type WriteOptions struct {
	Format     Format // FormatTS when empty
	TypeImport string // DefaultTypeImport when empty
}

const tsHeader = `/**
 * Font Registry
 *
 * Auto-generated by veela encode
 * DO NOT EDIT MANUALLY
 */

import type { FontMetadata } from '%s';

export const fontRegistry: Record<string, FontMetadata> = {
`

// Write serialises entries in the given order. The output contains no
// timestamps, so identical entries always produce identical bytes.
func Write(w io.Writer, entries []Entry, opts WriteOptions) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var err error
	switch opts.Format {
	case FormatTS, "":
		err = writeTS(bw, entries, opts)
	case FormatJSON:
		err = writeJSON(bw, entries)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown registry format %q", opts.Format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes the registry to path, creating parent directories.
// The file is replaced atomically so readers never observe a partial
// registry.
func WriteFile(path string, entries []Entry, opts WriteOptions) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, entries, opts); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeTS(w io.Writer, entries []Entry, opts WriteOptions) error {
	typeImport := opts.TypeImport
	if typeImport == "" {
		typeImport = DefaultTypeImport
	}
	if _, err := fmt.Fprintf(w, tsHeader, typeImport); err != nil {
		return err
	}

	blocks := make([]string, len(entries))
	for i, e := range entries {
		m := e.Metadata
		blocks[i] = fmt.Sprintf("    '%s': {\n"+
			"        base64: '%s',\n"+
			"        family: '%s',\n"+
			"        style: '%s',\n"+
			"        weight: %s,\n"+
			"        compressed: %t\n"+
			"    }",
			e.Key, m.Base64, m.Family, m.Style, tsWeight(m.Weight), m.Compressed)
	}
	if _, err := io.WriteString(w, strings.Join(blocks, ",\n")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n};\n")
	return err
}

func tsWeight(w fontmeta.Weight) string {
	w = w.Or(fontmeta.Keyword(fontmeta.WeightNormal))
	if w.IsNumeric() {
		return w.String()
	}
	return "'" + w.String() + "'"
}

func writeJSON(w io.Writer, entries []Entry) error {
	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}
	for i, e := range entries {
		key, _ := json.Marshal(e.Key)
		val, err := json.MarshalIndent(e.Metadata, "  ", "  ")
		if err != nil {
			return err
		}
		sep := ","
		if i == len(entries)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "  %s: %s%s\n", key, val, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func validateEntries(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := errors.ValidateKey(e.Key); err != nil {
			return err
		}
		if seen[e.Key] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate registry key %q", e.Key)
		}
		seen[e.Key] = true
		if err := e.Metadata.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "entry %q", e.Key)
		}
		for _, s := range []string{e.Metadata.Style, e.Metadata.Weight.String(), e.Metadata.Base64} {
			if strings.ContainsAny(s, "'\\\n") {
				return errors.New(errors.ErrCodeInvalidInput, "entry %q contains characters that cannot be quoted", e.Key)
			}
		}
	}
	return nil
}
