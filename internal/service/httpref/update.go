package httpref

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Update applies a sparse update to a custom http reference owned by the
// caller. A supplied field equal to the stored value is rejected; the
// record is persisted only when the changeset is non-empty and every guard
// passed.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.HttpRef, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.HttpRef
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.refs.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get http ref: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		var diff domain.FieldDiff
		domain.DiffValue(&diff, "name", input.Name, stored.Name)
		domain.DiffValue(&diff, "ref", input.Ref, stored.Ref)
		domain.DiffOptional(&diff, "description", input.Description, stored.Description)
		if err := diff.Err(); err != nil {
			return err
		}

		if diff.Changed("name") {
			taken, err := s.refs.NameTaken(txCtx, *input.Name, userID)
			if err != nil {
				return fmt.Errorf("check name: %w", err)
			}
			if taken {
				return domain.ErrNameDuplicate
			}
			stored.Name = *input.Name
		}
		if diff.Changed("ref") {
			stored.Ref = *input.Ref
		}
		if diff.Changed("description") {
			stored.Description = input.Description
		}
		stored.UpdatedAt = time.Now().UTC()

		updated, err = s.refs.Update(txCtx, stored)
		if err != nil {
			return fmt.Errorf("update http ref: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "http ref updated",
		slog.String("user_id", userID.String()),
		slog.String("http_ref_id", input.ID.String()),
	)

	return updated, nil
}
