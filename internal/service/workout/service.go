// Package workout implements the workout catalog service. A workout
// references at least one exercise; referenced custom exercises must belong
// to the workout's owner.
package workout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type workoutRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, f domain.ListFilter) ([]domain.Workout, int, error)
	Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
	Update(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetExercises(ctx context.Context, workoutID uuid.UUID, exerciseIDs []uuid.UUID) error
	GetExerciseIDsByWorkoutIDs(ctx context.Context, workoutIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

type exerciseRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Exercise, error)
	GetBodyPartsByExerciseIDs(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.BodyPartWithExerciseID, error)
	GetHttpRefsByExerciseIDs(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.HttpRefWithExerciseID, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides workout operations.
type Service struct {
	workouts  workoutRepo
	exercises exerciseRepo
	users     userRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new Workout service.
func NewService(
	log *slog.Logger,
	workouts workoutRepo,
	exercises exerciseRepo,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		workouts:  workouts,
		exercises: exercises,
		users:     users,
		tx:        tx,
		log:       log.With("service", "workout"),
	}
}

// resolveExercises resolves exercise ids and re-checks ownership per item in
// ascending id order: a referenced custom exercise must belong to the
// requester.
func (s *Service) resolveExercises(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Exercise, error) {
	ids = domain.DedupIDs(ids)
	domain.SortIDs(ids)

	got, err := s.exercises.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(got) != len(ids) {
		return nil, domain.ErrInvalidNestedObject
	}

	for _, e := range got {
		if e.IsCustom && !e.OwnedBy(userID) {
			return nil, fmt.Errorf("exercise %s: %w", e.ID, domain.ErrResourceOwnerMismatch)
		}
	}

	return got, nil
}

// attachExercises batch-loads the exercise relation for the given workouts
// and attaches it sorted ascending by id.
func (s *Service) attachExercises(ctx context.Context, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	workoutIDs := make([]uuid.UUID, len(workouts))
	for i := range workouts {
		workoutIDs[i] = workouts[i].ID
	}

	links, err := s.workouts.GetExerciseIDsByWorkoutIDs(ctx, workoutIDs)
	if err != nil {
		return err
	}

	var allIDs []uuid.UUID
	for _, ids := range links {
		allIDs = append(allIDs, ids...)
	}
	allIDs = domain.DedupIDs(allIDs)

	exercises, err := s.exercises.GetByIDs(ctx, allIDs)
	if err != nil {
		return err
	}
	if err := s.attachExerciseRelations(ctx, exercises); err != nil {
		return err
	}
	byID := make(map[uuid.UUID]domain.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	for i := range workouts {
		w := &workouts[i]
		for _, id := range links[w.ID] {
			if e, ok := byID[id]; ok {
				w.Exercises = append(w.Exercises, e)
			}
		}
		w.SortRelations()
	}

	return nil
}

// attachExerciseRelations batch-loads each exercise's own body parts and
// http refs, so nested exercises carry their full shape in responses.
func (s *Service) attachExerciseRelations(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(exercises))
	index := make(map[uuid.UUID]*domain.Exercise, len(exercises))
	for i := range exercises {
		ids[i] = exercises[i].ID
		index[exercises[i].ID] = &exercises[i]
	}

	bodyParts, err := s.exercises.GetBodyPartsByExerciseIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load body parts: %w", err)
	}
	for _, item := range bodyParts {
		e := index[item.ExerciseID]
		e.BodyParts = append(e.BodyParts, item.BodyPart)
	}

	httpRefs, err := s.exercises.GetHttpRefsByExerciseIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load http refs: %w", err)
	}
	for _, item := range httpRefs {
		e := index[item.ExerciseID]
		e.HttpRefs = append(e.HttpRefs, item.HttpRef)
	}

	return nil
}

func idsOf(items []domain.Exercise) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
