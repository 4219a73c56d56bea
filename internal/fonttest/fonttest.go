// Package fonttest provides font payloads for tests.
package fonttest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// WOFF2 returns a structurally valid WOFF2 header padded to size bytes.
// The seed byte varies the payload so distinct fonts hash differently.
func WOFF2(size int, seed byte) []byte {
	return woff("wOF2", size, 48, seed)
}

// WOFF returns a structurally valid WOFF header padded to size bytes.
func WOFF(size int, seed byte) []byte {
	return woff("wOFF", size, 44, seed)
}

func woff(sig string, size, min int, seed byte) []byte {
	if size < min {
		size = min
	}
	b := make([]byte, size)
	copy(b, sig)
	binary.BigEndian.PutUint32(b[8:12], uint32(size))
	binary.BigEndian.PutUint16(b[12:14], 1)
	for i := min; i < size; i++ {
		b[i] = seed + byte(i)
	}
	return b
}

// TTF returns the Go Regular TrueType font.
func TTF() []byte {
	return append([]byte(nil), goregular.TTF...)
}

// WriteFiles writes files (relative path → contents) under dir.
func WriteFiles(t testing.TB, dir string, files map[string][]byte) {
	t.Helper()
	for rel, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}
