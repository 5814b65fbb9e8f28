package httpref

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Delete removes a custom http reference owned by the caller. Join rows in
// referencing resources are detached; the referencing resources survive.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.refs.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get http ref: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		if err := s.refs.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete http ref: %w", err)
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "http ref deleted",
		slog.String("user_id", userID.String()),
		slog.String("http_ref_id", id.String()),
	)

	return id, nil
}
