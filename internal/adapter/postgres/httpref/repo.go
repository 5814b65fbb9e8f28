// Package httpref implements the HttpRef repository using PostgreSQL.
// http_refs stores both default and custom rows: is_custom=false means a
// curated, globally visible reference with user_id NULL; is_custom=true
// means the row belongs to exactly one user.
package httpref

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wellforge/lifestyle-backend/internal/adapter/postgres"
	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Repo provides http ref persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new http ref repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, name, ref, description, is_custom, user_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM http_refs
WHERE id = $1`

const getByIDsSQL = `
SELECT ` + columns + `
FROM http_refs
WHERE id = ANY($1::uuid[])
ORDER BY id`

// nameTakenSQL checks the duplicate-name scope: all defaults plus the
// given user's customs. Exact, case-sensitive match.
const nameTakenSQL = `
SELECT EXISTS (
    SELECT 1 FROM http_refs
    WHERE name = $1 AND (is_custom = FALSE OR user_id = $2)
)`

const insertSQL = `
INSERT INTO http_refs (id, name, ref, description, is_custom, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + columns

const updateSQL = `
UPDATE http_refs
SET name = $2, ref = $3, description = $4, updated_at = $5
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM http_refs WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an http ref by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.HttpRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ref, err := scanHttpRef(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "http ref", id)
	}

	return ref, nil
}

// GetByIDs returns the http refs matching the given ids, ordered by id.
// Missing ids are simply absent from the result; the caller compares counts.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.HttpRef, error) {
	if len(ids) == 0 {
		return []domain.HttpRef{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get http refs by ids: %w", err)
	}
	defer rows.Close()

	return scanHttpRefs(rows)
}

// NameTaken reports whether the name exists among defaults or the user's
// own customs.
func (r *Repo) NameTaken(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var taken bool
	if err := querier.QueryRow(ctx, nameTakenSQL, name, userID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check http ref name: %w", err)
	}

	return taken, nil
}

var listQuery = postgres.ListQuery{
	Table:   "http_refs",
	Columns: []string{"id", "name", "ref", "description", "is_custom", "user_id", "created_at", "updated_at"},
	SortWhitelist: map[string]string{
		"id":         "id",
		"name":       "name",
		"ref":        "ref",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	DefaultSort: "id",
}

// Find returns one page of http refs matching the filter plus the total
// number of matches.
func (r *Repo) Find(ctx context.Context, f domain.ListFilter) ([]domain.HttpRef, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := listQuery.Build(f)
	if err != nil {
		return nil, 0, fmt.Errorf("build http ref query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("find http refs: %w", err)
	}
	defer rows.Close()

	refs, err := scanHttpRefs(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find http refs: %w", err)
	}

	countSQL, countArgs, err := listQuery.BuildCount(f)
	if err != nil {
		return nil, 0, fmt.Errorf("build http ref count: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count http refs: %w", err)
	}

	return refs, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new http ref and returns the persisted row.
func (r *Repo) Create(ctx context.Context, ref *domain.HttpRef) (*domain.HttpRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanHttpRef(querier.QueryRow(ctx, insertSQL,
		ref.ID, ref.Name, ref.Ref, postgres.TextFromPtr(ref.Description),
		ref.IsCustom, ref.OwnerID, ref.CreatedAt, ref.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "http ref", ref.ID)
	}

	return created, nil
}

// Update persists mutable fields of an http ref. Ownership columns are
// immutable and never touched.
func (r *Repo) Update(ctx context.Context, ref *domain.HttpRef) (*domain.HttpRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanHttpRef(querier.QueryRow(ctx, updateSQL,
		ref.ID, ref.Name, ref.Ref, postgres.TextFromPtr(ref.Description), ref.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "http ref", ref.ID)
	}

	return updated, nil
}

// Delete removes an http ref. Join rows referencing it are detached via
// ON DELETE CASCADE on the join tables; referencing resources survive.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "http ref", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("http ref %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanHttpRef(row pgx.Row) (*domain.HttpRef, error) {
	var (
		ref         domain.HttpRef
		description pgtype.Text
	)

	err := row.Scan(
		&ref.ID, &ref.Name, &ref.Ref, &description,
		&ref.IsCustom, &ref.OwnerID, &ref.CreatedAt, &ref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ref.Description = postgres.PtrFromText(description)

	if !ref.Consistent() {
		return nil, fmt.Errorf("http ref %s: inconsistent ownership: %w", ref.ID, domain.ErrServer)
	}

	return &ref, nil
}

func scanHttpRefs(rows pgx.Rows) ([]domain.HttpRef, error) {
	var result []domain.HttpRef
	for rows.Next() {
		ref, err := scanHttpRef(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.HttpRef{}
	}

	return result, nil
}
