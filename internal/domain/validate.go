package domain

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Pure field validators, invoked explicitly at the service boundary before
// the core operations run. Each returns a *ValidationError on failure.

// forbiddenSymbols are rejected in titles and descriptions.
const forbiddenSymbols = "!@#$%^&*+=<>?\\/`~"

const (
	maxTitleLen       = 255
	maxDescriptionLen = 2000
	minPasswordLen    = 10
	maxPasswordLen    = 64
)

// ValidateTitle checks a resource name/title: required, bounded, and free of
// forbidden symbols. The value is validated as supplied: no trimming, since
// name comparison is exact including whitespace.
func ValidateTitle(field, value string) error {
	if value == "" {
		return NewValidationError(field, "required")
	}
	if utf8.RuneCountInString(value) > maxTitleLen {
		return NewValidationError(field, "too long")
	}
	if strings.ContainsAny(value, forbiddenSymbols) {
		return NewValidationError(field, "Invalid symbols")
	}
	return nil
}

// ValidateDescription checks an optional description.
func ValidateDescription(field string, value *string) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > maxDescriptionLen {
		return NewValidationError(field, "too long")
	}
	if strings.ContainsAny(*value, forbiddenSymbols) {
		return NewValidationError(field, "Invalid symbols")
	}
	return nil
}

// ValidateRef checks an http reference URL. Only the scheme prefix is
// enforced, matching the curated catalog's convention.
func ValidateRef(field, value string) error {
	if value == "" {
		return NewValidationError(field, "required")
	}
	if !strings.HasPrefix(value, "http") {
		return NewValidationError(field, "must start with http")
	}
	return nil
}

// ValidateEmail checks an email address shape.
func ValidateEmail(field, value string) error {
	if value == "" {
		return NewValidationError(field, "required")
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return NewValidationError(field, "invalid email")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(field, value string) error {
	n := utf8.RuneCountInString(value)
	if n < minPasswordLen {
		return NewValidationError(field, "too short")
	}
	if n > maxPasswordLen {
		return NewValidationError(field, "too long")
	}
	return nil
}
