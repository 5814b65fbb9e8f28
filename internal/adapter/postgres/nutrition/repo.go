// Package nutrition implements the Nutrition repository using PostgreSQL.
// It owns the nutritions table, the seeded nutrition_types taxonomy and the
// nutrition_http_refs join table.
package nutrition

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wellforge/lifestyle-backend/internal/adapter/postgres"
	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Repo provides nutrition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new nutrition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, title, description, nutrition_type_id, is_custom, user_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM nutritions
WHERE id = $1`

const titleTakenSQL = `
SELECT EXISTS (
    SELECT 1 FROM nutritions
    WHERE title = $1 AND (is_custom = FALSE OR user_id = $2)
)`

const insertSQL = `
INSERT INTO nutritions (id, title, description, nutrition_type_id, is_custom, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + columns

const updateSQL = `
UPDATE nutritions
SET title = $2, description = $3, nutrition_type_id = $4, updated_at = $5
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM nutritions WHERE id = $1`

const listTypesSQL = `
SELECT id, name
FROM nutrition_types
ORDER BY id`

const getTypeByIDSQL = `
SELECT id, name
FROM nutrition_types
WHERE id = $1`

const httpRefsByNutritionIDsSQL = `
SELECT jt.nutrition_id,
       hr.id, hr.name, hr.ref, hr.description, hr.is_custom, hr.user_id, hr.created_at, hr.updated_at
FROM nutrition_http_refs jt
JOIN http_refs hr ON jt.http_ref_id = hr.id
WHERE jt.nutrition_id = ANY($1::uuid[])
ORDER BY jt.nutrition_id, hr.id`

const deleteHttpRefLinksSQL = `DELETE FROM nutrition_http_refs WHERE nutrition_id = $1`

const insertHttpRefLinksSQL = `
INSERT INTO nutrition_http_refs (nutrition_id, http_ref_id)
SELECT $1, unnest($2::uuid[])`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a nutrition item by primary key, without relations.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Nutrition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := scanNutrition(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "nutrition", id)
	}

	return n, nil
}

// TitleTaken reports whether the title exists among defaults or the user's
// own customs.
func (r *Repo) TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var taken bool
	if err := querier.QueryRow(ctx, titleTakenSQL, title, userID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check nutrition title: %w", err)
	}

	return taken, nil
}

var listQuery = postgres.ListQuery{
	Table:   "nutritions",
	Columns: []string{"id", "title", "description", "nutrition_type_id", "is_custom", "user_id", "created_at", "updated_at"},
	SortWhitelist: map[string]string{
		"id":         "id",
		"title":      "title",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	DefaultSort: "id",
}

// Find returns one page of nutrition items matching the filter plus the
// total number of matches. Relations are not loaded here.
func (r *Repo) Find(ctx context.Context, f domain.ListFilter) ([]domain.Nutrition, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var extra []sq.Sqlizer
	if f.NutritionTypeID != nil {
		extra = append(extra, sq.Eq{"nutrition_type_id": *f.NutritionTypeID})
	}

	sql, args, err := listQuery.Build(f, extra...)
	if err != nil {
		return nil, 0, fmt.Errorf("build nutrition query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("find nutritions: %w", err)
	}
	defer rows.Close()

	nutritions, err := scanNutritions(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find nutritions: %w", err)
	}

	countSQL, countArgs, err := listQuery.BuildCount(f, extra...)
	if err != nil {
		return nil, 0, fmt.Errorf("build nutrition count: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count nutritions: %w", err)
	}

	return nutritions, total, nil
}

// ListTypes returns the full seeded taxonomy ordered by id.
func (r *Repo) ListTypes(ctx context.Context) ([]domain.NutritionType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTypesSQL)
	if err != nil {
		return nil, fmt.Errorf("list nutrition types: %w", err)
	}
	defer rows.Close()

	var types []domain.NutritionType
	for rows.Next() {
		var t domain.NutritionType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if types == nil {
		types = []domain.NutritionType{}
	}

	return types, nil
}

// GetTypeByID returns one taxonomy row.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetTypeByID(ctx context.Context, id uuid.UUID) (*domain.NutritionType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.NutritionType
	if err := querier.QueryRow(ctx, getTypeByIDSQL, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, postgres.MapError(err, "nutrition type", id)
	}

	return &t, nil
}

// GetHttpRefsByNutritionIDs returns http refs for multiple nutrition items,
// with NutritionID for grouping by the caller, ordered by http ref id.
func (r *Repo) GetHttpRefsByNutritionIDs(ctx context.Context, nutritionIDs []uuid.UUID) ([]domain.HttpRefWithNutritionID, error) {
	if len(nutritionIDs) == 0 {
		return []domain.HttpRefWithNutritionID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, httpRefsByNutritionIDsSQL, nutritionIDs)
	if err != nil {
		return nil, fmt.Errorf("get http refs by nutrition ids: %w", err)
	}
	defer rows.Close()

	var result []domain.HttpRefWithNutritionID
	for rows.Next() {
		var (
			item        domain.HttpRefWithNutritionID
			description pgtype.Text
		)
		err := rows.Scan(
			&item.NutritionID,
			&item.HttpRef.ID, &item.HttpRef.Name, &item.HttpRef.Ref, &description,
			&item.HttpRef.IsCustom, &item.HttpRef.OwnerID,
			&item.HttpRef.CreatedAt, &item.HttpRef.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.HttpRef.Description = postgres.PtrFromText(description)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.HttpRefWithNutritionID{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new nutrition row and returns the persisted row, without
// relations. Http ref links are written via SetHttpRefs inside the same
// transaction.
func (r *Repo) Create(ctx context.Context, n *domain.Nutrition) (*domain.Nutrition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanNutrition(querier.QueryRow(ctx, insertSQL,
		n.ID, n.Title, postgres.TextFromPtr(n.Description), n.NutritionTypeID,
		n.IsCustom, n.OwnerID, n.CreatedAt, n.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "nutrition", n.ID)
	}

	return created, nil
}

// Update persists mutable fields of a nutrition item.
func (r *Repo) Update(ctx context.Context, n *domain.Nutrition) (*domain.Nutrition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanNutrition(querier.QueryRow(ctx, updateSQL,
		n.ID, n.Title, postgres.TextFromPtr(n.Description), n.NutritionTypeID, n.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "nutrition", n.ID)
	}

	return updated, nil
}

// Delete removes a nutrition item. Join rows are detached via ON DELETE
// CASCADE; referenced http refs survive.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "nutrition", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("nutrition %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetHttpRefs replaces the nutrition item's http ref links with the given set.
func (r *Repo) SetHttpRefs(ctx context.Context, nutritionID uuid.UUID, httpRefIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteHttpRefLinksSQL, nutritionID); err != nil {
		return postgres.MapError(err, "nutrition http refs", nutritionID)
	}
	if len(httpRefIDs) == 0 {
		return nil
	}
	if _, err := querier.Exec(ctx, insertHttpRefLinksSQL, nutritionID, httpRefIDs); err != nil {
		return postgres.MapError(err, "nutrition http refs", nutritionID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanNutrition(row pgx.Row) (*domain.Nutrition, error) {
	var (
		n           domain.Nutrition
		description pgtype.Text
	)

	err := row.Scan(
		&n.ID, &n.Title, &description, &n.NutritionTypeID,
		&n.IsCustom, &n.OwnerID, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.Description = postgres.PtrFromText(description)

	if !n.Consistent() {
		return nil, fmt.Errorf("nutrition %s: inconsistent ownership: %w", n.ID, domain.ErrServer)
	}

	return &n, nil
}

func scanNutritions(rows pgx.Rows) ([]domain.Nutrition, error) {
	var result []domain.Nutrition
	for rows.Next() {
		n, err := scanNutrition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Nutrition{}
	}

	return result, nil
}
