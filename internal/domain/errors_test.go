package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpError_Message(t *testing.T) {
	e := &OpError{
		Op:   "ephe.resolve",
		Kind: KindNotFound,
		Path: "/opt/ephe",
		Err:  ErrNotFound,
	}
	msg := e.Error()
	for _, part := range []string{"ephe.resolve", string(KindNotFound), "/opt/ephe"} {
		if !strings.Contains(msg, part) {
			t.Errorf("expected message to contain %q, got %q", part, msg)
		}
	}
}

func TestOpError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &OpError{Op: "engine.compute", Kind: KindEngine, Err: inner}

	if !errors.Is(e, inner) {
		t.Error("expected errors.Is to reach wrapped error")
	}

	wrapped := fmt.Errorf("running chart: %w", e)
	if !IsKind(wrapped, KindEngine) {
		t.Error("expected IsKind to classify through wrapping")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Error("expected IsKind to reject mismatched kind")
	}
}

func TestIsKind_PlainError(t *testing.T) {
	if IsKind(errors.New("plain"), KindExecution) {
		t.Error("expected false for non-OpError")
	}
}
