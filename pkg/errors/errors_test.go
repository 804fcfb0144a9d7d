package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownNode, "unknown node %q", "Z")

	if err.Code != ErrCodeUnknownNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownNode)
	}

	if err.Message != `unknown node "Z"` {
		t.Errorf("Message = %v, want %v", err.Message, `unknown node "Z"`)
	}

	expected := `UNKNOWN_NODE: unknown node "Z"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "render svg")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "INTERNAL_ERROR: render svg: underlying error" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"non-matching code", New(ErrCodeInvalidInput, "test"), ErrCodeUnknownNode, false},
		{"wrapped error", Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("search: %w", New(ErrCodeUnknownNode, "x")), ErrCodeUnknownNode, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
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
	if got := GetCode(New(ErrCodeInvalidGraph, "x")); got != ErrCodeInvalidGraph {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidGraph)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeUnknownNode, "unknown node %q", "Q")); got != `unknown node "Q"` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsInput(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeUnknownNode, "x"), true},
		{New(ErrCodeInvalidFormat, "x"), true},
		{New(ErrCodeInternal, "x"), false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := IsInput(tt.err); got != tt.want {
			t.Errorf("IsInput(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
