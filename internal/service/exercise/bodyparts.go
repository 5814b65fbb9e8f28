package exercise

import (
	"context"
	"fmt"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// ListBodyParts returns the full body part taxonomy sorted ascending by id.
// Body parts are a shared, default-only taxonomy readable by anyone.
func (s *Service) ListBodyParts(ctx context.Context) ([]domain.BodyPart, error) {
	parts, err := s.bodyParts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	return parts, nil
}
