package exercise

import (
	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// CreateInput holds the parameters for creating a custom exercise.
type CreateInput struct {
	Title          string
	Description    *string
	NeedsEquipment bool
	BodyPartIDs    []uuid.UUID
	HttpRefIDs     []uuid.UUID
}

// Validate checks field shapes before the core operation runs.
func (i CreateInput) Validate() error {
	if err := domain.ValidateTitle("title", i.Title); err != nil {
		return err
	}
	return domain.ValidateDescription("description", i.Description)
}

// UpdateInput is the sparse update payload. A nil field means "don't touch";
// a non-nil relation list replaces the whole set.
type UpdateInput struct {
	ID             uuid.UUID
	Title          *string
	Description    *string
	NeedsEquipment *bool
	BodyPartIDs    *[]uuid.UUID
	HttpRefIDs     *[]uuid.UUID
}

// Validate checks supplied field shapes.
func (i UpdateInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if i.Title != nil {
		if err := domain.ValidateTitle("title", *i.Title); err != nil {
			return err
		}
	}
	return domain.ValidateDescription("description", i.Description)
}
