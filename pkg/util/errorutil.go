package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories the service reports.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
	KindStoreUnavailable
)

// Code returns the wire identifier for the kind.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindUnauthenticated:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindInvalidState:
		return "INVALID_STATE"
	case KindStoreUnavailable:
		return "STORE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps the kind to a transport status. Only the HTTP boundary calls this.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DomainError standardizes application errors.
type DomainError struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Code returns the wire identifier of the error kind.
func (e *DomainError) Code() string {
	return e.Kind.Code()
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind Kind, message string, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(KindValidation, message, details)
}

func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(KindNotFound, fmt.Sprintf("%s not found", resource), details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindUnauthenticated, message, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(KindForbidden, message, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(KindConflict, message, details)
}

func NewInvalidState(message string) error {
	return NewDomainError(KindInvalidState, message, nil)
}

func NewStoreUnavailable(err error) error {
	return &DomainError{
		Kind:    KindStoreUnavailable,
		Message: "data store unavailable",
		Err:     err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
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
	return &DomainError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind == kind
	}
	return false
}
