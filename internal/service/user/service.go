// Package user implements account management: signup, login, and
// profile maintenance.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides account operations.
type Service struct {
	users  userRepo
	tokens tokenIssuer
	tx     txManager
	log    *slog.Logger

	passwordHashCost int
}

// NewService creates a new user service. hashCost is the bcrypt cost used
// when hashing passwords.
func NewService(
	log *slog.Logger,
	users userRepo,
	tokens tokenIssuer,
	tx txManager,
	hashCost int,
) *Service {
	return &Service{
		users:            users,
		tokens:           tokens,
		tx:               tx,
		log:              log.With("service", "user"),
		passwordHashCost: hashCost,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User        *domain.User
	AccessToken string
}
