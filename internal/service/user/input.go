package user

import (
	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// RegisterInput holds the signup payload.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName *string
}

// Validate checks field shapes before the core operation runs.
func (i RegisterInput) Validate() error {
	if err := domain.ValidateEmail("email", i.Email); err != nil {
		return err
	}
	if err := domain.ValidateTitle("username", i.Username); err != nil {
		return err
	}
	if err := domain.ValidatePassword("password", i.Password); err != nil {
		return err
	}
	return domain.ValidateDescription("fullName", i.FullName)
}

// LoginInput holds the login payload.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks that both credentials are present.
func (i LoginInput) Validate() error {
	if err := domain.ValidateEmail("email", i.Email); err != nil {
		return err
	}
	if i.Password == "" {
		return domain.NewValidationError("password", "required")
	}
	return nil
}

// UpdateProfileInput is the sparse profile update payload. A nil field
// means "don't touch".
type UpdateProfileInput struct {
	ID       uuid.UUID
	Username *string
	FullName *string
	Password *string
}

// Validate checks supplied field shapes.
func (i UpdateProfileInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if i.Username != nil {
		if err := domain.ValidateTitle("username", *i.Username); err != nil {
			return err
		}
	}
	if i.Password != nil {
		if err := domain.ValidatePassword("password", *i.Password); err != nil {
			return err
		}
	}
	return domain.ValidateDescription("fullName", i.FullName)
}
