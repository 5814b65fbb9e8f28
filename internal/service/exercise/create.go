package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Create creates a custom exercise owned by the given user. All relation
// resolution and validation completes before any write.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Exercise, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(input.BodyPartIDs) == 0 {
		return nil, fmt.Errorf("body parts: %w", domain.ErrEmptyRelation)
	}

	var created *domain.Exercise
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		bodyParts, err := s.resolveBodyParts(txCtx, input.BodyPartIDs)
		if err != nil {
			return err
		}
		httpRefs, err := s.resolveHttpRefs(txCtx, userID, input.HttpRefIDs)
		if err != nil {
			return err
		}

		taken, err := s.exercises.TitleTaken(txCtx, input.Title, userID)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if taken {
			return domain.ErrNameDuplicate
		}

		now := time.Now().UTC()
		created, err = s.exercises.Create(txCtx, &domain.Exercise{
			ID:             uuid.New(),
			Ownership:      domain.CustomOwnedBy(userID),
			Title:          input.Title,
			Description:    input.Description,
			NeedsEquipment: input.NeedsEquipment,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("create exercise: %w", err)
		}

		if err := s.exercises.SetBodyParts(txCtx, created.ID, idsOfBodyParts(bodyParts)); err != nil {
			return fmt.Errorf("set body parts: %w", err)
		}
		if err := s.exercises.SetHttpRefs(txCtx, created.ID, idsOfHttpRefs(httpRefs)); err != nil {
			return fmt.Errorf("set http refs: %w", err)
		}

		created.BodyParts = bodyParts
		created.HttpRefs = httpRefs
		created.SortRelations()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "exercise created",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", created.ID.String()),
	)

	return created, nil
}

func idsOfBodyParts(items []domain.BodyPart) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func idsOfHttpRefs(items []domain.HttpRef) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
