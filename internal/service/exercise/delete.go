package exercise

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Delete removes a custom exercise owned by the caller. Join rows are
// detached; referenced body parts and http refs are never touched.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.exercises.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get exercise: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		if err := s.exercises.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "exercise deleted",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", id.String()),
	)

	return id, nil
}
