package exercise

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// GetByID returns one exercise with its relations sorted ascending by id.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Exercise, error) {
	e, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}

	if err := domain.CheckAccess(e.Ownership, requested, userID, domain.AccessRead); err != nil {
		return nil, err
	}

	items := []domain.Exercise{*e}
	if err := s.attachRelations(ctx, items); err != nil {
		return nil, err
	}

	return &items[0], nil
}
