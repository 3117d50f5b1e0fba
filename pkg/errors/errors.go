// Package errors provides structured error types for nativedeps.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the registry, engine, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - MISSING_* / UNSUPPORTED_* / AMBIGUOUS_*: Declaration resolution failures
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Every resolution error is fatal for the configuration pass: callers
// abort on the first one instead of collecting partial results.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingAttribute, "required downloaded library attribute %s not specified", "group")
//	if errors.Is(err, errors.ErrCodeMissingAttribute) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidDeclaration Code = "INVALID_DECLARATION"
	ErrCodeInvalidUsage       Code = "INVALID_USAGE"
	ErrCodeInvalidBinary      Code = "INVALID_BINARY"
	ErrCodeInvalidManifest    Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath        Code = "INVALID_PATH"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"

	// Declaration resolution errors
	ErrCodeMissingAttribute     Code = "MISSING_ATTRIBUTE"
	ErrCodeUnsupportedLinkage   Code = "UNSUPPORTED_LINKAGE"
	ErrCodeAmbiguousClassifier  Code = "AMBIGUOUS_CLASSIFIER"
	ErrCodeUnsupportedToolchain Code = "UNSUPPORTED_TOOLCHAIN"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// The code prefix of the outermost *Error is removed; any context added by
// wrapping is kept. Other errors return their string as-is.
func UserMessage(err error) string {
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		return strings.Replace(msg, string(e.Code)+": ", "", 1)
	}
	return msg
}
