// Package httpref implements the http reference catalog service: default
// refs are curated and immutable, custom refs belong to a single user.
package httpref

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type httpRefRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HttpRef, error)
	NameTaken(ctx context.Context, name string, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, f domain.ListFilter) ([]domain.HttpRef, int, error)
	Create(ctx context.Context, ref *domain.HttpRef) (*domain.HttpRef, error)
	Update(ctx context.Context, ref *domain.HttpRef) (*domain.HttpRef, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides http reference operations.
type Service struct {
	refs  httpRefRepo
	users userRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new HttpRef service.
func NewService(log *slog.Logger, refs httpRefRepo, users userRepo, tx txManager) *Service {
	return &Service{
		refs:  refs,
		users: users,
		tx:    tx,
		log:   log.With("service", "httpref"),
	}
}
