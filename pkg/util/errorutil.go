package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to callers.
const (
	CodeValidation        = "VALIDATION_FAILED"
	CodeDanglingReference = "DANGLING_REFERENCE"
	CodeTerminalState     = "TERMINAL_STATE_VIOLATION"
	CodeMissingReason     = "MISSING_REASON"
	CodeUnknownSeverity   = "UNKNOWN_SEVERITY"
	CodeUnknownTarget     = "UNKNOWN_TARGET"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Any DomainError with the same code matches.
var (
	ErrValidation        = &DomainError{Code: CodeValidation}
	ErrDanglingReference = &DomainError{Code: CodeDanglingReference}
	ErrTerminalState     = &DomainError{Code: CodeTerminalState}
	ErrMissingReason     = &DomainError{Code: CodeMissingReason}
	ErrUnknownSeverity   = &DomainError{Code: CodeUnknownSeverity}
	ErrUnknownTarget     = &DomainError{Code: CodeUnknownTarget}
	ErrStoreUnavailable  = &DomainError{Code: CodeStoreUnavailable}
	ErrNotFound          = &DomainError{Code: CodeNotFound}
	ErrConflict          = &DomainError{Code: CodeConflict}
	ErrUnauthorized      = &DomainError{Code: CodeUnauthorized}
	ErrForbidden         = &DomainError{Code: CodeForbidden}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewDanglingReference reports that a referenced entity does not exist.
func NewDanglingReference(resource string, details map[string]any) error {
	return NewDomainError(CodeDanglingReference, fmt.Sprintf("%s does not exist", resource), http.StatusUnprocessableEntity, details)
}

// NewTerminalState reports a mutation attempted on a CLOSED or DROPPED ticket.
func NewTerminalState(ticketID int64, status string) error {
	return NewDomainError(CodeTerminalState, "ticket is in a terminal state", http.StatusConflict,
		map[string]any{"ticket_id": ticketID, "status": status})
}

func NewMissingReason(ticketID int64) error {
	return NewDomainError(CodeMissingReason, "a reason is required to drop a ticket", http.StatusBadRequest,
		map[string]any{"ticket_id": ticketID})
}

func NewUnknownSeverity(severityID int64) error {
	return NewDomainError(CodeUnknownSeverity, "severity level not found", http.StatusNotFound,
		map[string]any{"severity_id": severityID})
}

func NewUnknownTarget(targetType string, targetID int64) error {
	return NewDomainError(CodeUnknownTarget, "notification target not found", http.StatusNotFound,
		map[string]any{"target_type": targetType, "target_id": targetID})
}

// NewStoreUnavailable wraps a record store failure.
func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       CodeStoreUnavailable,
		Message:    "record store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		if de, ok := NewStoreUnavailable(err).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
