package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Update applies a sparse update to a custom exercise owned by the caller.
// Relation lists replace the whole set; the body part list may never be
// emptied since an exercise requires at least one body part.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.Exercise, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Exercise
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.exercises.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get exercise: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		var diff domain.FieldDiff
		domain.DiffValue(&diff, "title", input.Title, stored.Title)
		domain.DiffOptional(&diff, "description", input.Description, stored.Description)
		domain.DiffValue(&diff, "needsEquipment", input.NeedsEquipment, stored.NeedsEquipment)
		if input.BodyPartIDs != nil {
			diff.MarkProvided("bodyParts")
		}
		if input.HttpRefIDs != nil {
			diff.MarkProvided("httpRefs")
		}
		if err := diff.Err(); err != nil {
			return err
		}

		var bodyParts []domain.BodyPart
		if input.BodyPartIDs != nil {
			if len(*input.BodyPartIDs) == 0 {
				return fmt.Errorf("body parts: %w", domain.ErrEmptyRelation)
			}
			bodyParts, err = s.resolveBodyParts(txCtx, *input.BodyPartIDs)
			if err != nil {
				return err
			}
		}
		var httpRefs []domain.HttpRef
		if input.HttpRefIDs != nil {
			httpRefs, err = s.resolveHttpRefs(txCtx, userID, *input.HttpRefIDs)
			if err != nil {
				return err
			}
		}

		if diff.Changed("title") {
			taken, err := s.exercises.TitleTaken(txCtx, *input.Title, userID)
			if err != nil {
				return fmt.Errorf("check title: %w", err)
			}
			if taken {
				return domain.ErrNameDuplicate
			}
			stored.Title = *input.Title
		}
		if diff.Changed("description") {
			stored.Description = input.Description
		}
		if diff.Changed("needsEquipment") {
			stored.NeedsEquipment = *input.NeedsEquipment
		}
		stored.UpdatedAt = time.Now().UTC()

		updated, err = s.exercises.Update(txCtx, stored)
		if err != nil {
			return fmt.Errorf("update exercise: %w", err)
		}

		if input.BodyPartIDs != nil {
			if err := s.exercises.SetBodyParts(txCtx, updated.ID, idsOfBodyParts(bodyParts)); err != nil {
				return fmt.Errorf("set body parts: %w", err)
			}
		}
		if input.HttpRefIDs != nil {
			if err := s.exercises.SetHttpRefs(txCtx, updated.ID, idsOfHttpRefs(httpRefs)); err != nil {
				return fmt.Errorf("set http refs: %w", err)
			}
		}

		items := []domain.Exercise{*updated}
		if err := s.attachRelations(txCtx, items); err != nil {
			return err
		}
		updated = &items[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "exercise updated",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", input.ID.String()),
	)

	return updated, nil
}
