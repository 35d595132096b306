package services_test

import (
	"errors"
	"strings"
	"testing"

	"durazubs/internal/history"
	"durazubs/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternal, "translate", "llm", "batch failed", base)
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"translate", "llm", "batch failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "run failure") {
		t.Fatalf("unexpected message %q", err)
	}
}

func TestFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want history.Status
	}{
		{name: "nil", err: nil, want: history.StatusSucceeded},
		{name: "pending", err: services.Wrap(services.ErrPending, "translate", "", "awaiting response", nil), want: history.StatusPending},
		{name: "validation", err: services.Wrap(services.ErrValidation, "synchronize", "", "", errors.New("bad")), want: history.StatusFailed},
	}
	for _, tt := range tests {
		if got := services.FailureStatus(tt.err); got != tt.want {
			t.Fatalf("%s: FailureStatus = %s, want %s", tt.name, got, tt.want)
		}
	}
}
