package document

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// FontSet is the document's set of active font faces. Faces are kept in
// insertion order and compared by identity.
type FontSet struct {
	mu    sync.RWMutex
	faces []*FontFace
}

// NewFontSet returns an empty font set.
func NewFontSet() *FontSet {
	return &FontSet{}
}

// Add inserts face. Adding a face twice has no effect.
func (s *FontSet) Add(face *FontFace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(face) < 0 {
		s.faces = append(s.faces, face)
	}
}

// Delete removes face and reports whether it was present.
func (s *FontSet) Delete(face *FontFace) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(face)
	if i < 0 {
		return false
	}
	s.faces = append(s.faces[:i], s.faces[i+1:]...)
	return true
}

// Has reports whether face is in the set.
func (s *FontSet) Has(face *FontFace) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index(face) >= 0
}

func (s *FontSet) index(face *FontFace) int {
	for i, f := range s.faces {
		if f == face {
			return i
		}
	}
	return -1
}

// Len returns the number of faces.
func (s *FontSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.faces)
}

// Faces returns a snapshot of the faces in insertion order.
func (s *FontSet) Faces() []*FontFace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*FontFace(nil), s.faces...)
}

// Families returns the distinct family names in first-seen order.
func (s *FontSet) Families() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var families []string
	for _, f := range s.faces {
		if !seen[f.Family] {
			seen[f.Family] = true
			families = append(families, f.Family)
		}
	}
	return families
}

// Clear removes every face.
func (s *FontSet) Clear() {
	s.mu.Lock()
	s.faces = nil
	s.mu.Unlock()
}

// CSS renders the set as @font-face rules referencing each face's source.
func (s *FontSet) CSS() string {
	var b strings.Builder
	_ = s.WriteCSS(&b, nil)
	return b.String()
}

// WriteCSS writes one @font-face rule per face. urlFor maps a face's
// source URL to the URL written into the stylesheet; nil keeps it as is.
func (s *FontSet) WriteCSS(w io.Writer, urlFor func(source string) string) error {
	for i, f := range s.Faces() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeRule(w, f, urlFor); err != nil {
			return err
		}
	}
	return nil
}

func writeRule(w io.Writer, f *FontFace, urlFor func(string) string) error {
	src := f.Source
	if urlFor != nil {
		src = urlFor(src)
	}
	src = fmt.Sprintf("url(%s)", src)
	if format := f.Info().Format; format != FormatUnknown {
		src += fmt.Sprintf(" format('%s')", format)
	}
	_, err := fmt.Fprintf(w, "@font-face {\n"+
		"  font-family: '%s';\n"+
		"  src: %s;\n"+
		"  font-style: %s;\n"+
		"  font-weight: %s;\n"+
		"  font-display: %s;\n"+
		"}\n",
		f.Family, src, f.Style, f.Weight, f.Display)
	return err
}
