// Package errors provides coded error types for midimap.
//
// Every failure that crosses a package boundary carries a [Code] so callers can
// tell the fatal router-file conditions apart from the recoverable ones without
// matching on message text.
//
// # Error Codes
//
// Router and names file loading:
//   - FILE_NOT_FOUND: the file does not exist
//   - INVALID_JSON: the file is not valid JSON
//   - MISSING_KEY: the expected top-level key is absent
//   - WRONG_TYPE: the key exists but holds the wrong JSON type
//
// Decoding and layout:
//   - INVALID_ENTRY: a single router entry is not a hex string
//   - INVALID_ORDER: the "Order" string has a non-integer element
//   - NO_ORDER: a projection needs an ordering and none was supplied
//
// Output:
//   - RENDER_FAILED, WRITE_FAILED: a single artifact could not be produced
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingKey, "no %q key in %s", "Router", path)
//	if errors.Is(err, errors.ErrCodeMissingKey) {
//	    // ...
//	}
//
//	err := errors.Wrap(errors.ErrCodeWriteFailed, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidJSON   Code = "INVALID_JSON"
	ErrCodeMissingKey    Code = "MISSING_KEY"
	ErrCodeWrongType     Code = "WRONG_TYPE"
	ErrCodeInvalidEntry  Code = "INVALID_ENTRY"
	ErrCodeInvalidOrder  Code = "INVALID_ORDER"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNoOrder      Code = "NO_ORDER"

	// Output errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeWriteFailed  Code = "WRITE_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Only the outermost *Error in the chain is consulted.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
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

// UserMessage returns the message without the code prefix.
// For *Error values whose cause is set, the cause is appended after a colon.
// Other errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// IsFatalLoad reports whether err is one of the four router-file conditions
// that abort a run.
func IsFatalLoad(err error) bool {
	switch GetCode(err) {
	case ErrCodeFileNotFound, ErrCodeInvalidJSON, ErrCodeMissingKey, ErrCodeWrongType:
		return true
	}
	return false
}
