package eh

import (
	"errors"
	"testing"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := newError(Timeout, "waited too long")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected errors.Is(err, ErrTimeout) to hold, err = %v", err)
	}
	if errors.Is(err, ErrScheduling) {
		t.Fatalf("did not expect err to match ErrScheduling")
	}
}

func TestErrorMessageIncludesKind(t *testing.T) {
	err := newError(MallocError, "out of memory")
	want := "malloc error: out of memory"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
