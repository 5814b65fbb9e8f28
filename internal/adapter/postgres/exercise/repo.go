// Package exercise implements the Exercise repository using PostgreSQL.
// It owns the exercises table and both join tables (exercise_body_parts,
// exercise_http_refs). Relation writes use replace-whole-set semantics.
package exercise

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

// Repo provides exercise persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new exercise repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, title, description, needs_equipment, is_custom, user_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM exercises
WHERE id = $1`

const getByIDsSQL = `
SELECT ` + columns + `
FROM exercises
WHERE id = ANY($1::uuid[])
ORDER BY id`

const titleTakenSQL = `
SELECT EXISTS (
    SELECT 1 FROM exercises
    WHERE title = $1 AND (is_custom = FALSE OR user_id = $2)
)`

const insertSQL = `
INSERT INTO exercises (id, title, description, needs_equipment, is_custom, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + columns

const updateSQL = `
UPDATE exercises
SET title = $2, description = $3, needs_equipment = $4, updated_at = $5
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM exercises WHERE id = $1`

const bodyPartsByExerciseIDsSQL = `
SELECT jt.exercise_id, bp.id, bp.name
FROM exercise_body_parts jt
JOIN body_parts bp ON jt.body_part_id = bp.id
WHERE jt.exercise_id = ANY($1::uuid[])
ORDER BY jt.exercise_id, bp.id`

const httpRefsByExerciseIDsSQL = `
SELECT jt.exercise_id,
       hr.id, hr.name, hr.ref, hr.description, hr.is_custom, hr.user_id, hr.created_at, hr.updated_at
FROM exercise_http_refs jt
JOIN http_refs hr ON jt.http_ref_id = hr.id
WHERE jt.exercise_id = ANY($1::uuid[])
ORDER BY jt.exercise_id, hr.id`

const deleteBodyPartLinksSQL = `DELETE FROM exercise_body_parts WHERE exercise_id = $1`

const insertBodyPartLinksSQL = `
INSERT INTO exercise_body_parts (exercise_id, body_part_id)
SELECT $1, unnest($2::uuid[])`

const deleteHttpRefLinksSQL = `DELETE FROM exercise_http_refs WHERE exercise_id = $1`

const insertHttpRefLinksSQL = `
INSERT INTO exercise_http_refs (exercise_id, http_ref_id)
SELECT $1, unnest($2::uuid[])`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an exercise by primary key, without relations.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExercise(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "exercise", id)
	}

	return e, nil
}

// GetByIDs returns exercises matching the given ids, ordered by id, without
// relations. Missing ids are absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Exercise, error) {
	if len(ids) == 0 {
		return []domain.Exercise{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get exercises by ids: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// TitleTaken reports whether the title exists among defaults or the user's
// own customs.
func (r *Repo) TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var taken bool
	if err := querier.QueryRow(ctx, titleTakenSQL, title, userID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check exercise title: %w", err)
	}

	return taken, nil
}

var listQuery = postgres.ListQuery{
	Table:   "exercises",
	Columns: []string{"id", "title", "description", "needs_equipment", "is_custom", "user_id", "created_at", "updated_at"},
	SortWhitelist: map[string]string{
		"id":         "id",
		"title":      "title",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	DefaultSort: "id",
}

// Find returns one page of exercises matching the filter plus the total
// number of matches. Relations are not loaded here.
func (r *Repo) Find(ctx context.Context, f domain.ListFilter) ([]domain.Exercise, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var extra []sq.Sqlizer
	if f.NeedsEquipment != nil {
		extra = append(extra, sq.Eq{"needs_equipment": *f.NeedsEquipment})
	}

	sql, args, err := listQuery.Build(f, extra...)
	if err != nil {
		return nil, 0, fmt.Errorf("build exercise query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("find exercises: %w", err)
	}
	defer rows.Close()

	exercises, err := scanExercises(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find exercises: %w", err)
	}

	countSQL, countArgs, err := listQuery.BuildCount(f, extra...)
	if err != nil {
		return nil, 0, fmt.Errorf("build exercise count: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count exercises: %w", err)
	}

	return exercises, total, nil
}

// GetBodyPartsByExerciseIDs returns body parts for multiple exercises,
// with ExerciseID for grouping by the caller, ordered by body part id.
func (r *Repo) GetBodyPartsByExerciseIDs(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.BodyPartWithExerciseID, error) {
	if len(exerciseIDs) == 0 {
		return []domain.BodyPartWithExerciseID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, bodyPartsByExerciseIDsSQL, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("get body parts by exercise ids: %w", err)
	}
	defer rows.Close()

	var result []domain.BodyPartWithExerciseID
	for rows.Next() {
		var item domain.BodyPartWithExerciseID
		if err := rows.Scan(&item.ExerciseID, &item.BodyPart.ID, &item.BodyPart.Name); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.BodyPartWithExerciseID{}
	}

	return result, nil
}

// GetHttpRefsByExerciseIDs returns http refs for multiple exercises,
// with ExerciseID for grouping by the caller, ordered by http ref id.
func (r *Repo) GetHttpRefsByExerciseIDs(ctx context.Context, exerciseIDs []uuid.UUID) ([]domain.HttpRefWithExerciseID, error) {
	if len(exerciseIDs) == 0 {
		return []domain.HttpRefWithExerciseID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, httpRefsByExerciseIDsSQL, exerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("get http refs by exercise ids: %w", err)
	}
	defer rows.Close()

	var result []domain.HttpRefWithExerciseID
	for rows.Next() {
		var (
			item        domain.HttpRefWithExerciseID
			description pgtype.Text
		)
		err := rows.Scan(
			&item.ExerciseID,
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
		result = []domain.HttpRefWithExerciseID{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new exercise row and returns the persisted row, without
// relations. Relation links are written separately via SetBodyParts and
// SetHttpRefs inside the same transaction.
func (r *Repo) Create(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanExercise(querier.QueryRow(ctx, insertSQL,
		e.ID, e.Title, postgres.TextFromPtr(e.Description), e.NeedsEquipment,
		e.IsCustom, e.OwnerID, e.CreatedAt, e.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "exercise", e.ID)
	}

	return created, nil
}

// Update persists mutable fields of an exercise. Ownership columns are
// immutable and never touched.
func (r *Repo) Update(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanExercise(querier.QueryRow(ctx, updateSQL,
		e.ID, e.Title, postgres.TextFromPtr(e.Description), e.NeedsEquipment, e.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "exercise", e.ID)
	}

	return updated, nil
}

// Delete removes an exercise. Join rows are detached via ON DELETE CASCADE;
// referenced body parts and http refs are never touched.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "exercise", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exercise %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetBodyParts replaces the exercise's body part links with the given set.
func (r *Repo) SetBodyParts(ctx context.Context, exerciseID uuid.UUID, bodyPartIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteBodyPartLinksSQL, exerciseID); err != nil {
		return postgres.MapError(err, "exercise body parts", exerciseID)
	}
	if len(bodyPartIDs) == 0 {
		return nil
	}
	if _, err := querier.Exec(ctx, insertBodyPartLinksSQL, exerciseID, bodyPartIDs); err != nil {
		return postgres.MapError(err, "exercise body parts", exerciseID)
	}

	return nil
}

// SetHttpRefs replaces the exercise's http ref links with the given set.
func (r *Repo) SetHttpRefs(ctx context.Context, exerciseID uuid.UUID, httpRefIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteHttpRefLinksSQL, exerciseID); err != nil {
		return postgres.MapError(err, "exercise http refs", exerciseID)
	}
	if len(httpRefIDs) == 0 {
		return nil
	}
	if _, err := querier.Exec(ctx, insertHttpRefLinksSQL, exerciseID, httpRefIDs); err != nil {
		return postgres.MapError(err, "exercise http refs", exerciseID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanExercise(row pgx.Row) (*domain.Exercise, error) {
	var (
		e           domain.Exercise
		description pgtype.Text
	)

	err := row.Scan(
		&e.ID, &e.Title, &description, &e.NeedsEquipment,
		&e.IsCustom, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Description = postgres.PtrFromText(description)

	if !e.Consistent() {
		return nil, fmt.Errorf("exercise %s: inconsistent ownership: %w", e.ID, domain.ErrServer)
	}

	return &e, nil
}

func scanExercises(rows pgx.Rows) ([]domain.Exercise, error) {
	var result []domain.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Exercise{}
	}

	return result, nil
}
