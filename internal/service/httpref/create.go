package httpref

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Create creates a custom http reference owned by the given user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.HttpRef, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.HttpRef
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		taken, err := s.refs.NameTaken(txCtx, input.Name, userID)
		if err != nil {
			return fmt.Errorf("check name: %w", err)
		}
		if taken {
			return domain.ErrNameDuplicate
		}

		now := time.Now().UTC()
		created, err = s.refs.Create(txCtx, &domain.HttpRef{
			ID:          uuid.New(),
			Ownership:   domain.CustomOwnedBy(userID),
			Name:        input.Name,
			Ref:         input.Ref,
			Description: input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create http ref: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "http ref created",
		slog.String("user_id", userID.String()),
		slog.String("http_ref_id", created.ID.String()),
	)

	return created, nil
}
