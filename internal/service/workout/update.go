package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Update applies a sparse update to a custom workout owned by the caller.
// The exercise list replaces the whole set and may never be emptied.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.Workout, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Workout
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.workouts.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get workout: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		var diff domain.FieldDiff
		domain.DiffValue(&diff, "title", input.Title, stored.Title)
		domain.DiffOptional(&diff, "description", input.Description, stored.Description)
		if input.ExerciseIDs != nil {
			diff.MarkProvided("exercises")
		}
		if err := diff.Err(); err != nil {
			return err
		}

		var exercises []domain.Exercise
		if input.ExerciseIDs != nil {
			if len(*input.ExerciseIDs) == 0 {
				return fmt.Errorf("exercises: %w", domain.ErrEmptyRelation)
			}
			exercises, err = s.resolveExercises(txCtx, userID, *input.ExerciseIDs)
			if err != nil {
				return err
			}
		}

		if diff.Changed("title") {
			taken, err := s.workouts.TitleTaken(txCtx, *input.Title, userID)
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
		stored.UpdatedAt = time.Now().UTC()

		updated, err = s.workouts.Update(txCtx, stored)
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}

		if input.ExerciseIDs != nil {
			if err := s.workouts.SetExercises(txCtx, updated.ID, idsOf(exercises)); err != nil {
				return fmt.Errorf("set exercises: %w", err)
			}
		}

		items := []domain.Workout{*updated}
		if err := s.attachExercises(txCtx, items); err != nil {
			return fmt.Errorf("load exercises: %w", err)
		}
		updated = &items[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "workout updated",
		slog.String("user_id", userID.String()),
		slog.String("workout_id", input.ID.String()),
	)

	return updated, nil
}

// Delete removes a custom workout owned by the caller. Exercise join rows
// are detached; the exercises themselves survive.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.workouts.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get workout: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		if err := s.workouts.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete workout: %w", err)
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "workout deleted",
		slog.String("user_id", userID.String()),
		slog.String("workout_id", id.String()),
	)

	return id, nil
}
