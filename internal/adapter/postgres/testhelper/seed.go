package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// Now returns the current time truncated to microseconds, matching the
// precision PostgreSQL stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUser creates a user account. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := Now()
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$testhash" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, full_name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Username, user.FullName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedBodyPart inserts a body part taxonomy row. Returns a filled domain.BodyPart.
func SeedBodyPart(t *testing.T, pool *pgxpool.Pool) domain.BodyPart {
	t.Helper()
	ctx := context.Background()

	bp := domain.BodyPart{
		ID:   uuid.New(),
		Name: "Body part " + uniqueSuffix(),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO body_parts (id, name) VALUES ($1, $2)`,
		bp.ID, bp.Name,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBodyPart insert: %v", err)
	}

	return bp
}

// SeedHttpRef creates an http ref. Pass uuid.Nil as ownerID for a default
// (shared) ref; any other id makes it a custom ref owned by that user.
func SeedHttpRef(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.HttpRef {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := Now()
	ref := domain.HttpRef{
		ID:        uuid.New(),
		Name:      "Ref " + suffix,
		Ref:       "https://example.com/media/" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ownerID != uuid.Nil {
		ref.Ownership = domain.CustomOwnedBy(ownerID)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO http_refs (id, name, ref, description, is_custom, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ref.ID, ref.Name, ref.Ref, ref.Description, ref.IsCustom, ref.OwnerID, ref.CreatedAt, ref.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHttpRef insert: %v", err)
	}

	return ref
}

// SeedExercise creates an exercise with the given body part and http ref
// links already attached. Pass uuid.Nil as ownerID for a default exercise.
func SeedExercise(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, bodyParts []domain.BodyPart, httpRefs []domain.HttpRef) domain.Exercise {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := Now()
	e := domain.Exercise{
		ID:        uuid.New(),
		Title:     "Exercise " + suffix,
		BodyParts: bodyParts,
		HttpRefs:  httpRefs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ownerID != uuid.Nil {
		e.Ownership = domain.CustomOwnedBy(ownerID)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO exercises (id, title, description, needs_equipment, is_custom, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, e.Description, e.NeedsEquipment, e.IsCustom, e.OwnerID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExercise insert exercise: %v", err)
	}

	for _, bp := range bodyParts {
		_, err := pool.Exec(ctx,
			`INSERT INTO exercise_body_parts (exercise_id, body_part_id) VALUES ($1, $2)`,
			e.ID, bp.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedExercise insert body part link: %v", err)
		}
	}
	for _, hr := range httpRefs {
		_, err := pool.Exec(ctx,
			`INSERT INTO exercise_http_refs (exercise_id, http_ref_id) VALUES ($1, $2)`,
			e.ID, hr.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedExercise insert http ref link: %v", err)
		}
	}

	e.SortRelations()
	return e
}

// SeedWorkout creates a workout linked to the given exercises.
// Pass uuid.Nil as ownerID for a default workout.
func SeedWorkout(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, exercises []domain.Exercise) domain.Workout {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := Now()
	w := domain.Workout{
		ID:        uuid.New(),
		Title:     "Workout " + suffix,
		Exercises: exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ownerID != uuid.Nil {
		w.Ownership = domain.CustomOwnedBy(ownerID)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO workouts (id, title, description, is_custom, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.Title, w.Description, w.IsCustom, w.OwnerID, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWorkout insert workout: %v", err)
	}

	for _, e := range exercises {
		_, err := pool.Exec(ctx,
			`INSERT INTO workout_exercises (workout_id, exercise_id) VALUES ($1, $2)`,
			w.ID, e.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedWorkout insert exercise link: %v", err)
		}
	}

	w.SortRelations()
	return w
}

// GetMentalType returns a seeded mental type by name (MEDITATION or AFFIRMATION).
func GetMentalType(t *testing.T, pool *pgxpool.Pool, name string) domain.MentalType {
	t.Helper()
	ctx := context.Background()

	var mt domain.MentalType
	err := pool.QueryRow(ctx,
		`SELECT id, name FROM mental_types WHERE name = $1`, name,
	).Scan(&mt.ID, &mt.Name)
	if err != nil {
		t.Fatalf("testhelper: GetMentalType %q: %v", name, err)
	}

	return mt
}

// GetNutritionType returns a seeded nutrition type by name (SUPPLEMENT or RECIPE).
func GetNutritionType(t *testing.T, pool *pgxpool.Pool, name string) domain.NutritionType {
	t.Helper()
	ctx := context.Background()

	var nt domain.NutritionType
	err := pool.QueryRow(ctx,
		`SELECT id, name FROM nutrition_types WHERE name = $1`, name,
	).Scan(&nt.ID, &nt.Name)
	if err != nil {
		t.Fatalf("testhelper: GetNutritionType %q: %v", name, err)
	}

	return nt
}

// SeedMentalActivity creates a mental activity with http ref links attached.
// Pass uuid.Nil as ownerID for a default activity.
func SeedMentalActivity(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, typeID uuid.UUID, httpRefs []domain.HttpRef) domain.MentalActivity {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := Now()
	m := domain.MentalActivity{
		ID:           uuid.New(),
		Title:        "Mental " + suffix,
		MentalTypeID: typeID,
		HttpRefs:     httpRefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ownerID != uuid.Nil {
		m.Ownership = domain.CustomOwnedBy(ownerID)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO mental_activities (id, title, description, mental_type_id, is_custom, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Title, m.Description, m.MentalTypeID, m.IsCustom, m.OwnerID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMentalActivity insert: %v", err)
	}

	for _, hr := range httpRefs {
		_, err := pool.Exec(ctx,
			`INSERT INTO mental_http_refs (mental_activity_id, http_ref_id) VALUES ($1, $2)`,
			m.ID, hr.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedMentalActivity insert http ref link: %v", err)
		}
	}

	m.SortRelations()
	return m
}

// SeedNutrition creates a nutrition item with http ref links attached.
// Pass uuid.Nil as ownerID for a default item.
func SeedNutrition(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, typeID uuid.UUID, httpRefs []domain.HttpRef) domain.Nutrition {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := Now()
	n := domain.Nutrition{
		ID:              uuid.New(),
		Title:           "Nutrition " + suffix,
		NutritionTypeID: typeID,
		HttpRefs:        httpRefs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if ownerID != uuid.Nil {
		n.Ownership = domain.CustomOwnedBy(ownerID)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO nutritions (id, title, description, nutrition_type_id, is_custom, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.Title, n.Description, n.NutritionTypeID, n.IsCustom, n.OwnerID, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNutrition insert: %v", err)
	}

	for _, hr := range httpRefs {
		_, err := pool.Exec(ctx,
			`INSERT INTO nutrition_http_refs (nutrition_id, http_ref_id) VALUES ($1, $2)`,
			n.ID, hr.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedNutrition insert http ref link: %v", err)
		}
	}

	n.SortRelations()
	return n
}
