package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories, services and the REST layer.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// FieldError names one rejected input field, using the JSON field name
// the client sent.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every problem found in one input so a client can
// fix a contact form or a content entity in a single round trip.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fe.Field)
		b.WriteString(" ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationErrors returns nil for an empty list, so validators can end
// with `return NewValidationErrors(errs)`.
func NewValidationErrors(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
