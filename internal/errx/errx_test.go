package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := InvalidInput("negative count %d", -3)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected errors.Is(err, ErrInvalidInput), err=%v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("InvalidInput must not match ErrNotFound, err=%v", err)
	}

	wrapped := fmt.Errorf("resolve: %w", err)
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Fatalf("expected wrapped error to match, got %v", wrapped)
	}
}

func TestWithCauseKeepsChain(t *testing.T) {
	cause := errors.New("registry offline")
	err := ErrNotFound.WithCause(cause)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if ErrNotFound.Unwrap() != nil {
		t.Fatal("sentinel must not be mutated by WithCause")
	}
}

func TestWithDataDoesNotMutateSentinel(t *testing.T) {
	err := ErrNotFound.WithData("fortress", "oakridge")
	if ErrNotFound.Data() != nil {
		t.Fatalf("sentinel data polluted: %v", ErrNotFound.Data())
	}
	if got := err.Data()["fortress"]; got != "oakridge" {
		t.Fatalf("expected fortress=oakridge, got %v", got)
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("fortress %q", "x"))
	code, ok := CodeOf(err)
	if !ok || code != CodeNotFound {
		t.Fatalf("expected not_found, got %q ok=%v", code, ok)
	}
	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Fatal("plain error must not carry a code")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(CodeNotFound, ""), "not_found"},
		{New(CodeNotFound, "fortress x"), "not_found: fortress x"},
		{New(CodeInvalidInput, "").WithCause(errors.New("boom")), "invalid_input: boom"},
		{New(CodeInvalidInput, "bad").WithCause(errors.New("boom")), "invalid_input: bad: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
