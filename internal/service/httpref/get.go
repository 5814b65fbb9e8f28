package httpref

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// GetByID returns one http reference. Default refs are readable by anyone;
// custom refs only by their owner, and only when requested as custom.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.HttpRef, error) {
	ref, err := s.refs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get http ref: %w", err)
	}

	if err := domain.CheckAccess(ref.Ownership, requested, userID, domain.AccessRead); err != nil {
		return nil, err
	}

	return ref, nil
}
