package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds family names and registry keys.
const maxNameLength = 256

// ValidateFamily validates a font family name.
// Family names end up inside quoted string literals in the generated
// registry module and in CSS, so quotes and control characters are rejected.
func ValidateFamily(family string) error {
	if family == "" {
		return New(ErrCodeInvalidInput, "font family cannot be empty")
	}
	return validateLiteral("font family", family)
}

// ValidateKey validates a registry key.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "registry key cannot be empty")
	}
	return validateLiteral("registry key", key)
}

func validateLiteral(what, s string) error {
	if len(s) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", what, maxNameLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", what)
		}
	}
	if strings.ContainsAny(s, `'"\`) {
		return New(ErrCodeInvalidInput, "%s cannot contain quotes or backslashes: %q", what, s)
	}
	return nil
}

// ValidateRelativePath validates a font path relative to the font directory,
// as used for override table keys.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (override keys are slash-separated)
func ValidateRelativePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
