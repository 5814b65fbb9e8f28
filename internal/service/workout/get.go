package workout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// GetByID returns one workout with its exercises sorted ascending by id.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Workout, error) {
	w, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	if err := domain.CheckAccess(w.Ownership, requested, userID, domain.AccessRead); err != nil {
		return nil, err
	}

	items := []domain.Workout{*w}
	if err := s.attachExercises(ctx, items); err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	return &items[0], nil
}

// ListWithFilter returns one page of workouts with exercises attached.
func (s *Service) ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.Workout], error) {
	if customsInScope(f.IsCustom) {
		if userID == uuid.Nil {
			return nil, domain.ErrUnauthorized
		}
		f.UserID = &userID
	}
	f = f.Normalized()

	items, total, err := s.workouts.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}

	if err := s.attachExercises(ctx, items); err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	return &domain.Page[domain.Workout]{
		Items:         items,
		PageNumber:    f.PageNumber,
		PageSize:      f.PageSize,
		TotalElements: total,
	}, nil
}

func customsInScope(isCustom *bool) bool {
	return isCustom == nil || *isCustom
}
