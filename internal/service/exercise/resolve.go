package exercise

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// resolveBodyParts resolves body part ids to live taxonomy rows. Any missing
// id fails the whole resolution with a single error.
func (s *Service) resolveBodyParts(ctx context.Context, ids []uuid.UUID) ([]domain.BodyPart, error) {
	ids = domain.DedupIDs(ids)
	domain.SortIDs(ids)

	got, err := s.bodyParts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get body parts: %w", err)
	}
	if len(got) != len(ids) {
		return nil, domain.ErrInvalidNestedObject
	}

	return got, nil
}

// resolveHttpRefs resolves http ref ids and re-checks ownership per item in
// ascending id order: a referenced custom ref must belong to the requester.
func (s *Service) resolveHttpRefs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.HttpRef, error) {
	ids = domain.DedupIDs(ids)
	domain.SortIDs(ids)

	got, err := s.httpRefs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get http refs: %w", err)
	}
	if len(got) != len(ids) {
		return nil, domain.ErrInvalidNestedObject
	}

	for _, ref := range got {
		if ref.IsCustom && !ref.OwnedBy(userID) {
			return nil, fmt.Errorf("http ref %s: %w", ref.ID, domain.ErrResourceOwnerMismatch)
		}
	}

	return got, nil
}

// attachRelations batch-loads body parts and http refs for the given
// exercises and attaches them sorted ascending by id.
func (s *Service) attachRelations(ctx context.Context, exercises []domain.Exercise) error {
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

	for i := range exercises {
		exercises[i].SortRelations()
	}

	return nil
}
