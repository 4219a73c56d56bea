// Package scan discovers font files below a directory.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/matzehuels/veela/pkg/errors"
)

// Extensions lists the file suffixes treated as fonts.
var Extensions = []string{".woff2", ".woff"}

// IsFont reports whether name carries a font extension.
func IsFont(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Fonts returns the absolute paths of all font files below root, in
// directory-listing order. Subdirectories are descended without a depth
// limit. Symbolic links are reported as neither files nor directories and
// are skipped, so link cycles cannot occur.
func Fonts(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "resolve %s", root)
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && IsFont(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "scan %s", root)
	}
	return files, nil
}
