package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Create creates a custom workout owned by the given user. A workout must
// reference at least one exercise; all resolution completes before any write.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Workout, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(input.ExerciseIDs) == 0 {
		return nil, fmt.Errorf("exercises: %w", domain.ErrEmptyRelation)
	}

	var created *domain.Workout
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		exercises, err := s.resolveExercises(txCtx, userID, input.ExerciseIDs)
		if err != nil {
			return err
		}

		taken, err := s.workouts.TitleTaken(txCtx, input.Title, userID)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if taken {
			return domain.ErrNameDuplicate
		}

		now := time.Now().UTC()
		created, err = s.workouts.Create(txCtx, &domain.Workout{
			ID:          uuid.New(),
			Ownership:   domain.CustomOwnedBy(userID),
			Title:       input.Title,
			Description: input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create workout: %w", err)
		}

		if err := s.workouts.SetExercises(txCtx, created.ID, idsOf(exercises)); err != nil {
			return fmt.Errorf("set exercises: %w", err)
		}

		if err := s.attachExerciseRelations(txCtx, exercises); err != nil {
			return err
		}
		created.Exercises = exercises
		created.SortRelations()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "workout created",
		slog.String("user_id", userID.String()),
		slog.String("workout_id", created.ID.String()),
	)

	return created, nil
}
