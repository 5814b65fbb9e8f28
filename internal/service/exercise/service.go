// Package exercise implements the exercise catalog service. An exercise
// references at least one body part and any number of http refs; referenced
// custom http refs must belong to the exercise's owner.
package exercise

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type exerciseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, f domain.ListFilter) ([]domain.Exercise, int, error)
	Create(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error)
	Update(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetBodyParts(ctx context.Context, exerciseID uuid.UUID, bodyPartIDs []uuid.UUID) error
	SetHttpRefs(ctx context.Context, exerciseID uuid.UUID, httpRefIDs []uuid.UUID) error
	GetBodyPartsByExerciseIDs(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.BodyPartWithExerciseID, error)
	GetHttpRefsByExerciseIDs(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.HttpRefWithExerciseID, error)
}

type bodyPartRepo interface {
	List(ctx context.Context) ([]domain.BodyPart, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.BodyPart, error)
}

type httpRefRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.HttpRef, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides exercise operations.
type Service struct {
	exercises exerciseRepo
	bodyParts bodyPartRepo
	httpRefs  httpRefRepo
	users     userRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new Exercise service.
func NewService(
	log *slog.Logger,
	exercises exerciseRepo,
	bodyParts bodyPartRepo,
	httpRefs httpRefRepo,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		exercises: exercises,
		bodyParts: bodyParts,
		httpRefs:  httpRefs,
		users:     users,
		tx:        tx,
		log:       log.With("service", "exercise"),
	}
}
