package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingKey, "no %q key", "Router")

	if err.Code != ErrCodeMissingKey {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingKey)
	}

	if err.Message != `no "Router" key` {
		t.Errorf("Message = %v, want %v", err.Message, `no "Router" key`)
	}

	expected := `MISSING_KEY: no "Router" key`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeWriteFailed, cause, "write out.png")

	if err.Code != ErrCodeWriteFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeWriteFailed)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "WRITE_FAILED: write out.png: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeNoOrder, "x"), ErrCodeNoOrder, true},
		{"non-matching code", New(ErrCodeNoOrder, "x"), ErrCodeWrongType, false},
		{"outer code wins", Wrap(ErrCodeRenderFailed, New(ErrCodeNoOrder, "inner"), "outer"), ErrCodeRenderFailed, true},
		{"fmt wrapped", fmt.Errorf("ctx: %w", New(ErrCodeInvalidJSON, "bad")), ErrCodeInvalidJSON, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
		{"empty code", errors.New("plain"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidEntry, "test"), ErrCodeInvalidEntry},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeNoOrder, "no order available"), "no order available"},
		{"with cause", Wrap(ErrCodeWriteFailed, errors.New("permission denied"), "write a.png"), "write a.png: permission denied"},
		{"nested", Wrap(ErrCodeRenderFailed, New(ErrCodeNoOrder, "no order"), "matrix"), "matrix: no order"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsFatalLoad(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeFileNotFound, true},
		{ErrCodeInvalidJSON, true},
		{ErrCodeMissingKey, true},
		{ErrCodeWrongType, true},
		{ErrCodeInvalidEntry, false},
		{ErrCodeNoOrder, false},
		{ErrCodeWriteFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsFatalLoad(New(tt.code, "x")); got != tt.want {
				t.Errorf("IsFatalLoad(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidJSON,
		ErrCodeMissingKey,
		ErrCodeWrongType,
		ErrCodeInvalidEntry,
		ErrCodeInvalidOrder,
		ErrCodeFileNotFound,
		ErrCodeNoOrder,
		ErrCodeRenderFailed,
		ErrCodeWriteFailed,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
