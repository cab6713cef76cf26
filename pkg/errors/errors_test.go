package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	err := New("CODE", "something failed", http.StatusBadRequest)
	if err.Error() != "something failed" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	wrapped := err.WithInternal(errors.New("boom"))
	if wrapped.Error() != "something failed: boom" {
		t.Fatalf("unexpected wrapped message: %s", wrapped.Error())
	}
	if err.Internal != nil {
		t.Fatal("WithInternal must not mutate the original error")
	}
}

func TestFromErrorPassesThroughAppErrors(t *testing.T) {
	if got := FromError(ErrNotFound); got != ErrNotFound {
		t.Fatalf("expected identity, got %v", got)
	}

	generic := errors.New("db exploded")
	got := FromError(generic)
	if got.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", got.Code)
	}
	if !errors.Is(got, generic) {
		t.Fatal("expected wrapped error to unwrap to the original")
	}
}

func TestNewUpstream(t *testing.T) {
	e := NewUpstream(http.StatusConflict, "Donation already recorded", nil)
	if e.Message != "Donation already recorded" {
		t.Fatalf("expected verbatim backend message, got %q", e.Message)
	}
	if e.StatusCode != http.StatusConflict {
		t.Fatalf("expected status passthrough, got %d", e.StatusCode)
	}

	fallback := NewUpstream(0, "", errors.New("connection refused"))
	if fallback.Message != ErrUpstream.Message {
		t.Fatalf("expected generic fallback, got %q", fallback.Message)
	}
	if fallback.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected bad gateway fallback, got %d", fallback.StatusCode)
	}
}

func TestWithMessageCopies(t *testing.T) {
	custom := ErrBadRequest.WithMessage("Please select a project")
	if custom.Message != "Please select a project" {
		t.Fatalf("unexpected message %q", custom.Message)
	}
	if ErrBadRequest.Message == custom.Message {
		t.Fatal("WithMessage must not mutate the sentinel")
	}
}
