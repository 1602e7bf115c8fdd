package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainErrorIsMatchesByCode(t *testing.T) {
	err := NewTerminalState(42, "CLOSED")
	if !errors.Is(err, ErrTerminalState) {
		t.Fatalf("errors.Is(%v, ErrTerminalState) = false", err)
	}
	if errors.Is(err, ErrMissingReason) {
		t.Fatalf("terminal state error matched ErrMissingReason")
	}

	wrapped := fmt.Errorf("transition: %w", err)
	if !errors.Is(wrapped, ErrTerminalState) {
		t.Fatalf("wrapped error lost its code")
	}
}

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{name: "domain error passes through", err: NewUnknownSeverity(9), code: CodeUnknownSeverity, status: http.StatusNotFound},
		{name: "deadline becomes store unavailable", err: fmt.Errorf("query: %w", context.DeadlineExceeded), code: CodeStoreUnavailable, status: http.StatusServiceUnavailable},
		{name: "plain error is internal", err: errors.New("boom"), code: CodeInternal, status: http.StatusInternalServerError},
		{name: "dangling reference", err: NewDanglingReference("department", nil), code: CodeDanglingReference, status: http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			if de.Code != tc.code {
				t.Fatalf("Code = %s, want %s", de.Code, tc.code)
			}
			if de.HTTPStatus != tc.status {
				t.Fatalf("HTTPStatus = %d, want %d", de.HTTPStatus, tc.status)
			}
		})
	}

	if ToDomainError(nil) != nil {
		t.Fatalf("ToDomainError(nil) should be nil")
	}
}

func TestStoreUnavailableUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailable(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("store unavailable should unwrap to its cause")
	}
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("store unavailable should match its sentinel")
	}
}
