// Package workout implements the Workout repository using PostgreSQL.
// It owns the workouts table and the workout_exercises join table.
package workout

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

// Repo provides workout persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workout repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, title, description, is_custom, user_id, created_at, updated_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM workouts
WHERE id = $1`

const titleTakenSQL = `
SELECT EXISTS (
    SELECT 1 FROM workouts
    WHERE title = $1 AND (is_custom = FALSE OR user_id = $2)
)`

const insertSQL = `
INSERT INTO workouts (id, title, description, is_custom, user_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns

const updateSQL = `
UPDATE workouts
SET title = $2, description = $3, updated_at = $4
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM workouts WHERE id = $1`

const exerciseIDsByWorkoutIDsSQL = `
SELECT workout_id, exercise_id
FROM workout_exercises
WHERE workout_id = ANY($1::uuid[])
ORDER BY workout_id, exercise_id`

const deleteExerciseLinksSQL = `DELETE FROM workout_exercises WHERE workout_id = $1`

const insertExerciseLinksSQL = `
INSERT INTO workout_exercises (workout_id, exercise_id)
SELECT $1, unnest($2::uuid[])`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a workout by primary key, without relations.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWorkout(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "workout", id)
	}

	return w, nil
}

// TitleTaken reports whether the title exists among defaults or the user's
// own customs.
func (r *Repo) TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var taken bool
	if err := querier.QueryRow(ctx, titleTakenSQL, title, userID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check workout title: %w", err)
	}

	return taken, nil
}

var listQuery = postgres.ListQuery{
	Table:   "workouts",
	Columns: []string{"id", "title", "description", "is_custom", "user_id", "created_at", "updated_at"},
	SortWhitelist: map[string]string{
		"id":         "id",
		"title":      "title",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	DefaultSort: "id",
}

// Find returns one page of workouts matching the filter plus the total
// number of matches. Relations are not loaded here.
func (r *Repo) Find(ctx context.Context, f domain.ListFilter) ([]domain.Workout, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := listQuery.Build(f)
	if err != nil {
		return nil, 0, fmt.Errorf("build workout query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("find workouts: %w", err)
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("find workouts: %w", err)
	}

	countSQL, countArgs, err := listQuery.BuildCount(f)
	if err != nil {
		return nil, 0, fmt.Errorf("build workout count: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count workouts: %w", err)
	}

	return workouts, total, nil
}

// GetExerciseIDsByWorkoutIDs returns exercise id links for multiple
// workouts, keyed by workout id, ordered by exercise id.
func (r *Repo) GetExerciseIDsByWorkoutIDs(ctx context.Context, workoutIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	if len(workoutIDs) == 0 {
		return map[uuid.UUID][]uuid.UUID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, exerciseIDsByWorkoutIDsSQL, workoutIDs)
	if err != nil {
		return nil, fmt.Errorf("get exercise ids by workout ids: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]uuid.UUID, len(workoutIDs))
	for rows.Next() {
		var workoutID, exerciseID uuid.UUID
		if err := rows.Scan(&workoutID, &exerciseID); err != nil {
			return nil, err
		}
		result[workoutID] = append(result[workoutID], exerciseID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new workout row and returns the persisted row, without
// relations. Exercise links are written via SetExercises in the same
// transaction.
func (r *Repo) Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanWorkout(querier.QueryRow(ctx, insertSQL,
		w.ID, w.Title, postgres.TextFromPtr(w.Description),
		w.IsCustom, w.OwnerID, w.CreatedAt, w.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "workout", w.ID)
	}

	return created, nil
}

// Update persists mutable fields of a workout.
func (r *Repo) Update(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanWorkout(querier.QueryRow(ctx, updateSQL,
		w.ID, w.Title, postgres.TextFromPtr(w.Description), w.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "workout", w.ID)
	}

	return updated, nil
}

// Delete removes a workout. Join rows are detached via ON DELETE CASCADE;
// referenced exercises survive.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "workout", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetExercises replaces the workout's exercise links with the given set.
func (r *Repo) SetExercises(ctx context.Context, workoutID uuid.UUID, exerciseIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteExerciseLinksSQL, workoutID); err != nil {
		return postgres.MapError(err, "workout exercises", workoutID)
	}
	if len(exerciseIDs) == 0 {
		return nil
	}
	if _, err := querier.Exec(ctx, insertExerciseLinksSQL, workoutID, exerciseIDs); err != nil {
		return postgres.MapError(err, "workout exercises", workoutID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var (
		w           domain.Workout
		description pgtype.Text
	)

	err := row.Scan(
		&w.ID, &w.Title, &description,
		&w.IsCustom, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Description = postgres.PtrFromText(description)

	if !w.Consistent() {
		return nil, fmt.Errorf("workout %s: inconsistent ownership: %w", w.ID, domain.ErrServer)
	}

	return &w, nil
}

func scanWorkouts(rows pgx.Rows) ([]domain.Workout, error) {
	var result []domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Workout{}
	}

	return result, nil
}
