package exercise_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellforge/lifestyle-backend/internal/adapter/postgres/exercise"
	"github.com/wellforge/lifestyle-backend/internal/adapter/postgres/testhelper"
	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*exercise.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return exercise.New(pool), pool
}

// ---------------------------------------------------------------------------
// Create + relation link tests
// ---------------------------------------------------------------------------

func TestRepo_Create_WithRelations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	bp := testhelper.SeedBodyPart(t, pool)
	ref := testhelper.SeedHttpRef(t, pool, user.ID)

	suffix := uuid.New().String()[:8]
	now := testhelper.Now()
	created, err := repo.Create(ctx, &domain.Exercise{
		ID:             uuid.New(),
		Ownership:      domain.CustomOwnedBy(user.ID),
		Title:          "Squat-" + suffix,
		NeedsEquipment: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if err := repo.SetBodyParts(ctx, created.ID, []uuid.UUID{bp.ID}); err != nil {
		t.Fatalf("SetBodyParts: unexpected error: %v", err)
	}
	if err := repo.SetHttpRefs(ctx, created.ID, []uuid.UUID{ref.ID}); err != nil {
		t.Fatalf("SetHttpRefs: unexpected error: %v", err)
	}

	bps, err := repo.GetBodyPartsByExerciseIDs(ctx, []uuid.UUID{created.ID})
	if err != nil {
		t.Fatalf("GetBodyPartsByExerciseIDs: unexpected error: %v", err)
	}
	if len(bps) != 1 || bps[0].BodyPart.ID != bp.ID || bps[0].ExerciseID != created.ID {
		t.Fatalf("unexpected body part links: %+v", bps)
	}

	refs, err := repo.GetHttpRefsByExerciseIDs(ctx, []uuid.UUID{created.ID})
	if err != nil {
		t.Fatalf("GetHttpRefsByExerciseIDs: unexpected error: %v", err)
	}
	if len(refs) != 1 || refs[0].HttpRef.ID != ref.ID {
		t.Fatalf("unexpected http ref links: %+v", refs)
	}
}

func TestRepo_SetBodyParts_ReplacesSet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	bp1 := testhelper.SeedBodyPart(t, pool)
	bp2 := testhelper.SeedBodyPart(t, pool)
	bp3 := testhelper.SeedBodyPart(t, pool)
	e := testhelper.SeedExercise(t, pool, user.ID, []domain.BodyPart{bp1, bp2}, nil)

	// Replacing {bp1, bp2} with {bp2, bp3} must drop bp1 and add bp3.
	if err := repo.SetBodyParts(ctx, e.ID, []uuid.UUID{bp2.ID, bp3.ID}); err != nil {
		t.Fatalf("SetBodyParts: unexpected error: %v", err)
	}

	links, err := repo.GetBodyPartsByExerciseIDs(ctx, []uuid.UUID{e.ID})
	if err != nil {
		t.Fatalf("GetBodyPartsByExerciseIDs: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	got := map[uuid.UUID]bool{}
	for _, l := range links {
		got[l.BodyPart.ID] = true
	}
	if got[bp1.ID] {
		t.Error("bp1 link should have been removed")
	}
	if !got[bp2.ID] || !got[bp3.ID] {
		t.Errorf("expected bp2 and bp3 links, got %v", got)
	}
}

func TestRepo_SetHttpRefs_EmptyClearsSet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	ref := testhelper.SeedHttpRef(t, pool, user.ID)
	e := testhelper.SeedExercise(t, pool, user.ID, nil, []domain.HttpRef{ref})

	if err := repo.SetHttpRefs(ctx, e.ID, nil); err != nil {
		t.Fatalf("SetHttpRefs: unexpected error: %v", err)
	}

	links, err := repo.GetHttpRefsByExerciseIDs(ctx, []uuid.UUID{e.ID})
	if err != nil {
		t.Fatalf("GetHttpRefsByExerciseIDs: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected 0 links, got %d", len(links))
	}

	// The http ref itself survives.
	var exists bool
	err = pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM http_refs WHERE id = $1)", ref.ID).Scan(&exists)
	if err != nil {
		t.Fatalf("check http ref exists: %v", err)
	}
	if !exists {
		t.Error("http ref should survive link removal")
	}
}

func TestRepo_SetBodyParts_UnknownID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	e := testhelper.SeedExercise(t, pool, user.ID, nil, nil)

	err := repo.SetBodyParts(ctx, e.ID, []uuid.UUID{uuid.New()})
	assertIsDomainError(t, err, domain.ErrInvalidNestedObject)
}

// ---------------------------------------------------------------------------
// Batch loader tests
// ---------------------------------------------------------------------------

func TestRepo_GetHttpRefsByExerciseIDs_Batch(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	ref1 := testhelper.SeedHttpRef(t, pool, user.ID)
	ref2 := testhelper.SeedHttpRef(t, pool, user.ID)
	e1 := testhelper.SeedExercise(t, pool, user.ID, nil, []domain.HttpRef{ref1, ref2})
	e2 := testhelper.SeedExercise(t, pool, user.ID, nil, []domain.HttpRef{ref2})

	got, err := repo.GetHttpRefsByExerciseIDs(ctx, []uuid.UUID{e1.ID, e2.ID})
	if err != nil {
		t.Fatalf("GetHttpRefsByExerciseIDs: unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}

	e1Count, e2Count := 0, 0
	for _, item := range got {
		switch item.ExerciseID {
		case e1.ID:
			e1Count++
		case e2.ID:
			e2Count++
		default:
			t.Fatalf("unexpected exercise id: %s", item.ExerciseID)
		}
	}
	if e1Count != 2 {
		t.Errorf("expected 2 refs for e1, got %d", e1Count)
	}
	if e2Count != 1 {
		t.Errorf("expected 1 ref for e2, got %d", e2Count)
	}
}

func TestRepo_GetBodyPartsByExerciseIDs_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	got, err := repo.GetBodyPartsByExerciseIDs(ctx, []uuid.UUID{})
	if err != nil {
		t.Fatalf("GetBodyPartsByExerciseIDs empty: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 results, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// TitleTaken tests
// ---------------------------------------------------------------------------

func TestRepo_TitleTaken_Scope(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	e := testhelper.SeedExercise(t, pool, owner.ID, nil, nil)

	taken, err := repo.TitleTaken(ctx, e.Title, owner.ID)
	if err != nil {
		t.Fatalf("TitleTaken owner: unexpected error: %v", err)
	}
	if !taken {
		t.Error("title should be taken for the owner")
	}

	taken, err = repo.TitleTaken(ctx, e.Title, other.ID)
	if err != nil {
		t.Fatalf("TitleTaken other: unexpected error: %v", err)
	}
	if taken {
		t.Error("another user's custom title should not be taken")
	}
}

// ---------------------------------------------------------------------------
// Find tests
// ---------------------------------------------------------------------------

func TestRepo_Find_NeedsEquipmentFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	suffix := uuid.New().String()[:8]
	now := testhelper.Now()
	withEq, err := repo.Create(ctx, &domain.Exercise{
		ID:             uuid.New(),
		Ownership:      domain.CustomOwnedBy(user.ID),
		Title:          "Eq-" + suffix,
		NeedsEquipment: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Create withEq: %v", err)
	}
	_, err = repo.Create(ctx, &domain.Exercise{
		ID:        uuid.New(),
		Ownership: domain.CustomOwnedBy(user.ID),
		Title:     "NoEq-" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create noEq: %v", err)
	}

	isCustom := true
	needsEquipment := true
	got, total, err := repo.Find(ctx, domain.ListFilter{
		IsCustom:       &isCustom,
		UserID:         &user.ID,
		NeedsEquipment: &needsEquipment,
		PageSize:       100,
	})
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}

	if total != 1 || len(got) != 1 {
		t.Fatalf("expected exactly 1 match, got len=%d total=%d", len(got), total)
	}
	if got[0].ID != withEq.ID {
		t.Errorf("ID mismatch: got %s, want %s", got[0].ID, withEq.ID)
	}
}

// ---------------------------------------------------------------------------
// Update + Delete tests
// ---------------------------------------------------------------------------

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	e := testhelper.SeedExercise(t, pool, user.ID, nil, nil)

	e.Title = "Updated-" + uuid.New().String()[:8]
	e.NeedsEquipment = true
	e.UpdatedAt = testhelper.Now()

	updated, err := repo.Update(ctx, &e)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.Title != e.Title {
		t.Errorf("Title mismatch: got %q, want %q", updated.Title, e.Title)
	}
	if !updated.NeedsEquipment {
		t.Error("NeedsEquipment should be true after update")
	}
}

func TestRepo_Delete_DetachesJoinRows(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	bp := testhelper.SeedBodyPart(t, pool)
	ref := testhelper.SeedHttpRef(t, pool, user.ID)
	e := testhelper.SeedExercise(t, pool, user.ID, []domain.BodyPart{bp}, []domain.HttpRef{ref})

	if err := repo.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	// Join rows are gone, referenced rows survive.
	var linkCount int
	err := pool.QueryRow(ctx,
		"SELECT count(*) FROM exercise_body_parts WHERE exercise_id = $1", e.ID,
	).Scan(&linkCount)
	if err != nil {
		t.Fatalf("check exercise_body_parts: %v", err)
	}
	if linkCount != 0 {
		t.Errorf("expected 0 body part links after delete, got %d", linkCount)
	}

	var refExists bool
	err = pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM http_refs WHERE id = $1)", ref.ID).Scan(&refExists)
	if err != nil {
		t.Fatalf("check http ref exists: %v", err)
	}
	if !refExists {
		t.Error("http ref should survive exercise deletion")
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	err := repo.Delete(ctx, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
