package httpref

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// ListWithFilter returns one page of http references. An unspecified
// visibility filter means "defaults plus the caller's customs" and requires
// an authenticated caller; defaults-only listing is open to anyone.
func (s *Service) ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.HttpRef], error) {
	if customsInScope(f.IsCustom) {
		if userID == uuid.Nil {
			return nil, domain.ErrUnauthorized
		}
		f.UserID = &userID
	}
	f = f.Normalized()

	items, total, err := s.refs.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find http refs: %w", err)
	}

	return &domain.Page[domain.HttpRef]{
		Items:         items,
		PageNumber:    f.PageNumber,
		PageSize:      f.PageSize,
		TotalElements: total,
	}, nil
}

// customsInScope reports whether the visibility filter includes the caller's
// custom resources (nil = defaults plus customs, true = customs only).
func customsInScope(isCustom *bool) bool {
	return isCustom == nil || *isCustom
}
