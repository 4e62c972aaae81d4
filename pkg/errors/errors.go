package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrDuplicate is returned when a resource with the same key already exists
type ErrDuplicate struct {
	Resource string
	ID       string
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.ID)
}

// ErrInvalidStateTransition is returned when a one-way or guarded transition is not allowed
type ErrInvalidStateTransition struct {
	Resource string
	From     string
	To       string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s", e.Resource, e.From, e.To)
}

// FieldErrorKind classifies a field-level validation failure
type FieldErrorKind string

const (
	KindInvalidPhone FieldErrorKind = "InvalidPhone"
	KindRequired     FieldErrorKind = "Required"
	KindOutOfRange   FieldErrorKind = "OutOfRange"
)

// FieldError is a single recoverable validation failure on an input field
type FieldError struct {
	Field   string         `json:"field"`
	Kind    FieldErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// ErrValidation collects field errors. It never carries partial state.
type ErrValidation struct {
	Fields []FieldError
}

func (e *ErrValidation) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Kind))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether a field failed with the given kind
func (e *ErrValidation) Has(field string, kind FieldErrorKind) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Kind == kind {
			return true
		}
	}
	return false
}

// ErrUpstream wraps a failure of a remote collaborator (restaurant API, geocoder)
type ErrUpstream struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *ErrUpstream) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Op, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}
