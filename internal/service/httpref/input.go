package httpref

import (
	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// CreateInput holds the parameters for creating a custom http reference.
type CreateInput struct {
	Name        string
	Ref         string
	Description *string
}

// Validate checks field shapes before the core operation runs.
func (i CreateInput) Validate() error {
	if err := domain.ValidateTitle("name", i.Name); err != nil {
		return err
	}
	if err := domain.ValidateRef("ref", i.Ref); err != nil {
		return err
	}
	return domain.ValidateDescription("description", i.Description)
}

// UpdateInput is the sparse update payload. A nil field means "don't touch".
type UpdateInput struct {
	ID          uuid.UUID
	Name        *string
	Ref         *string
	Description *string
}

// Validate checks supplied field shapes. The diff rules themselves (absent,
// not-different, changed) are evaluated against stored state later.
func (i UpdateInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if i.Name != nil {
		if err := domain.ValidateTitle("name", *i.Name); err != nil {
			return err
		}
	}
	if i.Ref != nil {
		if err := domain.ValidateRef("ref", *i.Ref); err != nil {
			return err
		}
	}
	return domain.ValidateDescription("description", i.Description)
}
