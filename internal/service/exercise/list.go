package exercise

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// ListWithFilter returns one page of exercises with relations attached.
// An unspecified visibility filter means "defaults plus the caller's
// customs" and requires an authenticated caller.
func (s *Service) ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.Exercise], error) {
	if customsInScope(f.IsCustom) {
		if userID == uuid.Nil {
			return nil, domain.ErrUnauthorized
		}
		f.UserID = &userID
	}
	f = f.Normalized()

	items, total, err := s.exercises.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}

	if err := s.attachRelations(ctx, items); err != nil {
		return nil, err
	}

	return &domain.Page[domain.Exercise]{
		Items:         items,
		PageNumber:    f.PageNumber,
		PageSize:      f.PageSize,
		TotalElements: total,
	}, nil
}

func customsInScope(isCustom *bool) bool {
	return isCustom == nil || *isCustom
}
