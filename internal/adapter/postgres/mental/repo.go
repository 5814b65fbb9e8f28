// Package mental implements the MentalActivity repository using PostgreSQL.
// It owns the mental_activities table, the seeded mental_types taxonomy and
// the mental_http_refs join table.
package mental

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

// Repo provides mental activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new mental activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, title, description, mental_type_id, is_custom, user_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM mental_activities
WHERE id = $1`

const titleTakenSQL = `
SELECT EXISTS (
    SELECT 1 FROM mental_activities
    WHERE title = $1 AND (is_custom = FALSE OR user_id = $2)
)`

const insertSQL = `
INSERT INTO mental_activities (id, title, description, mental_type_id, is_custom, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + columns

const updateSQL = `
UPDATE mental_activities
SET title = $2, description = $3, mental_type_id = $4, updated_at = $5
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM mental_activities WHERE id = $1`

const listTypesSQL = `
SELECT id, name
FROM mental_types
ORDER BY id`

const getTypeByIDSQL = `
SELECT id, name
FROM mental_types
WHERE id = $1`

const httpRefsByActivityIDsSQL = `
SELECT jt.mental_activity_id,
       hr.id, hr.name, hr.ref, hr.description, hr.is_custom, hr.user_id, hr.created_at, hr.updated_at
FROM mental_http_refs jt
JOIN http_refs hr ON jt.http_ref_id = hr.id
WHERE jt.mental_activity_id = ANY($1::uuid[])
ORDER BY jt.mental_activity_id, hr.id`

const deleteHttpRefLinksSQL = `DELETE FROM mental_http_refs WHERE mental_activity_id = $1`

const insertHttpRefLinksSQL = `
INSERT INTO mental_http_refs (mental_activity_id, http_ref_id)
SELECT $1, unnest($2::uuid[])`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a mental activity by primary key, without relations.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MentalActivity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanActivity(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "mental activity", id)
	}

	return m, nil
}

// TitleTaken reports whether the title exists among defaults or the user's
// own customs.
func (r *Repo) TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var taken bool
	if err := querier.QueryRow(ctx, titleTakenSQL, title, userID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check mental activity title: %w", err)
	}

	return taken, nil
}

var listQuery = postgres.ListQuery{
	Table:   "mental_activities",
	Columns: []string{"id", "title", "description", "mental_type_id", "is_custom", "user_id", "created_at", "updated_at"},
	SortWhitelist: map[string]string{
		"id":         "id",
		"title":      "title",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	DefaultSort: "id",
}

// Find returns one page of mental activities matching the filter plus the
// total number of matches. Relations are not loaded here.
func (r *Repo) Find(ctx context.Context, f domain.ListFilter) ([]domain.MentalActivity, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var extra []sq.Sqlizer
	if f.MentalTypeID != nil {
		extra = append(extra, sq.Eq{"mental_type_id": *f.MentalTypeID})
	}

	sql, args, err := listQuery.Build(f, extra...)
	if err != nil {
		return nil, 0, fmt.Errorf("build mental activity query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("find mental activities: %w", err)
	}
	defer rows.Close()

	activities, err := scanActivities(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find mental activities: %w", err)
	}

	countSQL, countArgs, err := listQuery.BuildCount(f, extra...)
	if err != nil {
		return nil, 0, fmt.Errorf("build mental activity count: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count mental activities: %w", err)
	}

	return activities, total, nil
}

// ListTypes returns the full seeded taxonomy ordered by id.
func (r *Repo) ListTypes(ctx context.Context) ([]domain.MentalType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTypesSQL)
	if err != nil {
		return nil, fmt.Errorf("list mental types: %w", err)
	}
	defer rows.Close()

	var types []domain.MentalType
	for rows.Next() {
		var t domain.MentalType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if types == nil {
		types = []domain.MentalType{}
	}

	return types, nil
}

// GetTypeByID returns one taxonomy row.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetTypeByID(ctx context.Context, id uuid.UUID) (*domain.MentalType, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.MentalType
	if err := querier.QueryRow(ctx, getTypeByIDSQL, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, postgres.MapError(err, "mental type", id)
	}

	return &t, nil
}

// GetHttpRefsByActivityIDs returns http refs for multiple activities,
// with ActivityID for grouping by the caller, ordered by http ref id.
func (r *Repo) GetHttpRefsByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) ([]domain.HttpRefWithActivityID, error) {
	if len(activityIDs) == 0 {
		return []domain.HttpRefWithActivityID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, httpRefsByActivityIDsSQL, activityIDs)
	if err != nil {
		return nil, fmt.Errorf("get http refs by activity ids: %w", err)
	}
	defer rows.Close()

	var result []domain.HttpRefWithActivityID
	for rows.Next() {
		var (
			item        domain.HttpRefWithActivityID
			description pgtype.Text
		)
		err := rows.Scan(
			&item.ActivityID,
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
		result = []domain.HttpRefWithActivityID{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new mental activity row and returns the persisted row,
// without relations. Http ref links are written via SetHttpRefs inside the
// same transaction.
func (r *Repo) Create(ctx context.Context, m *domain.MentalActivity) (*domain.MentalActivity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanActivity(querier.QueryRow(ctx, insertSQL,
		m.ID, m.Title, postgres.TextFromPtr(m.Description), m.MentalTypeID,
		m.IsCustom, m.OwnerID, m.CreatedAt, m.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "mental activity", m.ID)
	}

	return created, nil
}

// Update persists mutable fields of a mental activity.
func (r *Repo) Update(ctx context.Context, m *domain.MentalActivity) (*domain.MentalActivity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanActivity(querier.QueryRow(ctx, updateSQL,
		m.ID, m.Title, postgres.TextFromPtr(m.Description), m.MentalTypeID, m.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "mental activity", m.ID)
	}

	return updated, nil
}

// Delete removes a mental activity. Join rows are detached via ON DELETE
// CASCADE; referenced http refs survive.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "mental activity", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mental activity %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetHttpRefs replaces the activity's http ref links with the given set.
func (r *Repo) SetHttpRefs(ctx context.Context, activityID uuid.UUID, httpRefIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteHttpRefLinksSQL, activityID); err != nil {
		return postgres.MapError(err, "mental activity http refs", activityID)
	}
	if len(httpRefIDs) == 0 {
		return nil
	}
	if _, err := querier.Exec(ctx, insertHttpRefLinksSQL, activityID, httpRefIDs); err != nil {
		return postgres.MapError(err, "mental activity http refs", activityID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanActivity(row pgx.Row) (*domain.MentalActivity, error) {
	var (
		m           domain.MentalActivity
		description pgtype.Text
	)

	err := row.Scan(
		&m.ID, &m.Title, &description, &m.MentalTypeID,
		&m.IsCustom, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Description = postgres.PtrFromText(description)

	if !m.Consistent() {
		return nil, fmt.Errorf("mental activity %s: inconsistent ownership: %w", m.ID, domain.ErrServer)
	}

	return &m, nil
}

func scanActivities(rows pgx.Rows) ([]domain.MentalActivity, error) {
	var result []domain.MentalActivity
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.MentalActivity{}
	}

	return result, nil
}
