// Package bodypart implements the BodyPart repository using PostgreSQL.
// Body parts are a seeded, default-only taxonomy: the repository is
// read-only from the application's point of view; Insert exists for the
// seeder alone.
package bodypart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wellforge/lifestyle-backend/internal/adapter/postgres"
	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Repo provides body part persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new body part repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listSQL = `
SELECT id, name
FROM body_parts
ORDER BY id`

const getByIDsSQL = `
SELECT id, name
FROM body_parts
WHERE id = ANY($1::uuid[])
ORDER BY id`

// List returns the full taxonomy ordered by id.
// Returns an empty slice (not nil) when nothing is seeded.
func (r *Repo) List(ctx context.Context) ([]domain.BodyPart, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list body parts: %w", err)
	}
	defer rows.Close()

	return scanBodyParts(rows)
}

// GetByIDs returns the body parts matching the given ids, ordered by id.
// Missing ids are simply absent from the result; the caller compares counts.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.BodyPart, error) {
	if len(ids) == 0 {
		return []domain.BodyPart{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get body parts by ids: %w", err)
	}
	defer rows.Close()

	return scanBodyParts(rows)
}

const insertSQL = `
INSERT INTO body_parts (id, name)
VALUES ($1, $2)
ON CONFLICT (name) DO NOTHING`

// Insert adds a taxonomy row. Already-seeded names are skipped silently,
// which keeps the seeder idempotent.
func (r *Repo) Insert(ctx context.Context, bp domain.BodyPart) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, insertSQL, bp.ID, bp.Name); err != nil {
		return fmt.Errorf("insert body part %q: %w", bp.Name, err)
	}

	return nil
}

func scanBodyParts(rows pgx.Rows) ([]domain.BodyPart, error) {
	var result []domain.BodyPart
	for rows.Next() {
		var bp domain.BodyPart
		if err := rows.Scan(&bp.ID, &bp.Name); err != nil {
			return nil, err
		}
		result = append(result, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.BodyPart{}
	}

	return result, nil
}
