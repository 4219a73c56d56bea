// Package errors provides structured error types for veela.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so that callers (the CLI, the HTTP server, document glue code) can
// decide whether to abort, warn, or retry without string matching.
//
// # Error Codes
//
// Encoder (build time):
//   - SCAN_FAILED: the font directory could not be read
//   - ENCODE_FAILED: a per-file step (read, compress, base64, write) failed
//
// Loader (run time):
//   - DECODE_FAILED: malformed base64 or a corrupt compressed stream
//   - COMPRESSION_UNSUPPORTED: a compressed payload with no decompressor
//   - FONT_ACTIVATION_FAILED: the font bytes were rejected on load
//   - REGISTRY_LOAD_FAILED: the registry could not be loaded
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "empty family for %s", key)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeEncodeFailed, origErr, "encode %s", rel)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Build-time errors
	ErrCodeScanFailed   Code = "SCAN_FAILED"
	ErrCodeEncodeFailed Code = "ENCODE_FAILED"

	// Run-time errors
	ErrCodeDecodeFailed           Code = "DECODE_FAILED"
	ErrCodeCompressionUnsupported Code = "COMPRESSION_UNSUPPORTED"
	ErrCodeActivationFailed       Code = "FONT_ACTIVATION_FAILED"
	ErrCodeRegistryLoadFailed     Code = "REGISTRY_LOAD_FAILED"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// so an ENCODE_FAILED wrapping an INVALID_INPUT matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
