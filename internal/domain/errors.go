package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers. The message text is part of the
// API contract: the REST boundary writes it verbatim into error responses.
var (
	ErrNotFound      = errors.New("Not found")
	ErrUserNotFound  = errors.New("User not found")
	ErrAlreadyExists = errors.New("Already exists")
	ErrValidation    = errors.New("Validation error")
	ErrUnauthorized  = errors.New("Authentication error")

	// ErrDefaultCustomMismatch: a default resource was requested as custom
	// or a custom resource was requested as default.
	ErrDefaultCustomMismatch = errors.New("Default-custom mismatch")

	// ErrResourceOwnerMismatch: a custom resource (or one of its referenced
	// sub-resources) belongs to a different user than the requester.
	ErrResourceOwnerMismatch = errors.New("User-resource mismatch")

	// ErrDefaultImmutable: update or delete attempted on a default resource.
	ErrDefaultImmutable = errors.New("Default is not allowed to modify")

	// ErrNameDuplicate: the name collides within {defaults ∪ owner's customs}.
	ErrNameDuplicate = errors.New("Title Duplicate")

	// ErrInvalidNestedObject: one or more referenced sub-resource ids do not
	// exist. Resolution is all-or-nothing.
	ErrInvalidNestedObject = errors.New("Invalid nested object")

	// ErrEmptyRelation: a mandatory relation list was supplied empty.
	ErrEmptyRelation = errors.New("Empty required relation")

	// ErrNoUpdatesRequested: every field of an update payload was absent.
	ErrNoUpdatesRequested = errors.New("No updates request")

	// ErrServer: invariant violation, e.g. a seeded taxonomy row is missing.
	ErrServer = errors.New("Server error")
)

// FieldsNotDifferentError reports update fields that were supplied but equal
// the stored values. A no-op update for a specific field signals a caller
// logic error and is rejected rather than silently ignored.
type FieldsNotDifferentError struct {
	Fields []string
}

func (e *FieldsNotDifferentError) Error() string {
	return "Fields values are not different: " + strings.Join(e.Fields, ", ")
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
