// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wellforge/lifestyle-backend/internal/adapter/postgres"
	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, email, username, full_name, password_hash, created_at, updated_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + columns + `
FROM users
WHERE email = $1`

const insertSQL = `
INSERT INTO users (id, email, username, full_name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns

const updateSQL = `
UPDATE users
SET email = $2, username = $3, full_name = $4, password_hash = $5, updated_at = $6
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM users WHERE id = $1`

// GetByID returns a user by primary key.
// Returns domain.ErrUserNotFound if the user does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapUserError(err, id)
	}

	return u, nil
}

// GetByEmail returns a user by email, used for login.
// Returns domain.ErrUserNotFound if the user does not exist.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, mapUserError(err, email)
	}

	return u, nil
}

// Create inserts a new user. Returns domain.ErrAlreadyExists on an email or
// username collision.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanUser(querier.QueryRow(ctx, insertSQL,
		u.ID, u.Email, u.Username, postgres.TextFromPtr(u.FullName),
		u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return created, nil
}

// Update persists mutable fields of a user.
func (r *Repo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanUser(querier.QueryRow(ctx, updateSQL,
		u.ID, u.Email, u.Username, postgres.TextFromPtr(u.FullName),
		u.PasswordHash, u.UpdatedAt,
	))
	if err != nil {
		return nil, mapUserError(err, u.ID)
	}

	return updated, nil
}

// Delete removes a user. Owned custom resources are removed by ON DELETE
// CASCADE on their user_id columns.
// Returns domain.ErrUserNotFound if the user does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}

	return nil
}

// mapUserError narrows the generic not-found mapping to ErrUserNotFound so
// callers can distinguish a missing account from a missing resource.
func mapUserError(err error, id any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %v: %w", id, domain.ErrUserNotFound)
	}
	return postgres.MapError(err, "user", id)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		fullName pgtype.Text
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &fullName,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.FullName = postgres.PtrFromText(fullName)

	return &u, nil
}
