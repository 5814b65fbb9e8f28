package httpref_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellforge/lifestyle-backend/internal/adapter/postgres/httpref"
	"github.com/wellforge/lifestyle-backend/internal/adapter/postgres/testhelper"
	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*httpref.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return httpref.New(pool), pool
}

// ---------------------------------------------------------------------------
// Create + GetByID tests
// ---------------------------------------------------------------------------

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	suffix := uuid.New().String()[:8]
	desc := "video demo"
	now := testhelper.Now()
	ref := &domain.HttpRef{
		ID:          uuid.New(),
		Ownership:   domain.CustomOwnedBy(user.ID),
		Name:        "Ref-" + suffix,
		Ref:         "https://example.com/" + suffix,
		Description: &desc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := repo.Create(ctx, ref)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.ID != ref.ID {
		t.Errorf("ID mismatch: got %s, want %s", created.ID, ref.ID)
	}
	if !created.IsCustom {
		t.Error("expected IsCustom true")
	}
	if created.OwnerID == nil || *created.OwnerID != user.ID {
		t.Errorf("OwnerID mismatch: got %v, want %s", created.OwnerID, user.ID)
	}
	if created.Description == nil || *created.Description != desc {
		t.Errorf("Description mismatch: got %v, want %q", created.Description, desc)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Name != created.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, created.Name)
	}
	if got.Ref != created.Ref {
		t.Errorf("Ref mismatch: got %q, want %q", got.Ref, created.Ref)
	}
}

func TestRepo_Create_Default(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	now := testhelper.Now()
	created, err := repo.Create(ctx, &domain.HttpRef{
		ID:        uuid.New(),
		Name:      "Default-" + suffix,
		Ref:       "https://example.com/" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.IsCustom {
		t.Error("expected IsCustom false")
	}
	if created.OwnerID != nil {
		t.Errorf("expected nil OwnerID, got %v", created.OwnerID)
	}
	if created.Description != nil {
		t.Errorf("expected nil Description, got %v", created.Description)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_GetByIDs_MissingAbsent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	ref := testhelper.SeedHttpRef(t, pool, user.ID)

	got, err := repo.GetByIDs(ctx, []uuid.UUID{ref.ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(got))
	}
	if got[0].ID != ref.ID {
		t.Errorf("ID mismatch: got %s, want %s", got[0].ID, ref.ID)
	}
}

// ---------------------------------------------------------------------------
// NameTaken tests
// ---------------------------------------------------------------------------

func TestRepo_NameTaken_DefaultBlocksEveryone(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	defaultRef := testhelper.SeedHttpRef(t, pool, uuid.Nil)
	user := testhelper.SeedUser(t, pool)

	taken, err := repo.NameTaken(ctx, defaultRef.Name, user.ID)
	if err != nil {
		t.Fatalf("NameTaken: unexpected error: %v", err)
	}
	if !taken {
		t.Error("default ref name should be taken for any user")
	}
}

func TestRepo_NameTaken_CustomScopedToOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	ref := testhelper.SeedHttpRef(t, pool, owner.ID)

	taken, err := repo.NameTaken(ctx, ref.Name, owner.ID)
	if err != nil {
		t.Fatalf("NameTaken owner: unexpected error: %v", err)
	}
	if !taken {
		t.Error("name should be taken for the owner")
	}

	taken, err = repo.NameTaken(ctx, ref.Name, other.ID)
	if err != nil {
		t.Fatalf("NameTaken other: unexpected error: %v", err)
	}
	if taken {
		t.Error("another user's custom name should not be taken")
	}
}

func TestRepo_NameTaken_Free(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	taken, err := repo.NameTaken(ctx, "Free-"+uuid.New().String()[:8], user.ID)
	if err != nil {
		t.Fatalf("NameTaken: unexpected error: %v", err)
	}
	if taken {
		t.Error("unused name should not be taken")
	}
}

// ---------------------------------------------------------------------------
// Find tests
// ---------------------------------------------------------------------------

func TestRepo_Find_Visibility(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	viewer := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)

	defaultRef := testhelper.SeedHttpRef(t, pool, uuid.Nil)
	ownRef := testhelper.SeedHttpRef(t, pool, viewer.ID)
	testhelper.SeedHttpRef(t, pool, stranger.ID) // must never appear

	// A name filter keyed on the shared "Ref " prefix keeps other tests'
	// rows out of the picture but matches all three seeded here.
	name := "Ref "
	refs, total, err := repo.Find(ctx, domain.ListFilter{
		UserID:   &viewer.ID,
		Name:     &name,
		PageSize: 100,
	})
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}

	seen := make(map[uuid.UUID]bool, len(refs))
	for _, r := range refs {
		seen[r.ID] = true
		if r.IsCustom && (r.OwnerID == nil || *r.OwnerID != viewer.ID) {
			t.Errorf("found custom ref %s not owned by viewer", r.ID)
		}
	}
	if !seen[defaultRef.ID] {
		t.Error("default ref should be visible")
	}
	if !seen[ownRef.ID] {
		t.Error("viewer's own custom ref should be visible")
	}
	if total < 2 {
		t.Errorf("expected total >= 2, got %d", total)
	}
}

func TestRepo_Find_CustomOnly(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	viewer := testhelper.SeedUser(t, pool)
	testhelper.SeedHttpRef(t, pool, uuid.Nil)
	ownRef := testhelper.SeedHttpRef(t, pool, viewer.ID)

	isCustom := true
	refs, _, err := repo.Find(ctx, domain.ListFilter{
		IsCustom: &isCustom,
		UserID:   &viewer.ID,
		PageSize: 100,
	})
	if err != nil {
		t.Fatalf("Find: unexpected error: %v", err)
	}

	if len(refs) != 1 {
		t.Fatalf("expected 1 custom ref, got %d", len(refs))
	}
	if refs[0].ID != ownRef.ID {
		t.Errorf("ID mismatch: got %s, want %s", refs[0].ID, ownRef.ID)
	}
}

func TestRepo_Find_Pagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		ids = append(ids, testhelper.SeedHttpRef(t, pool, user.ID).ID)
	}
	domain.SortIDs(ids)

	isCustom := true
	filter := domain.ListFilter{
		IsCustom:   &isCustom,
		UserID:     &user.ID,
		PageSize:   2,
		PageNumber: 0,
	}

	page1, total, err := repo.Find(ctx, filter)
	if err != nil {
		t.Fatalf("Find page 0: unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 refs on page 0, got %d", len(page1))
	}

	filter.PageNumber = 1
	page2, _, err := repo.Find(ctx, filter)
	if err != nil {
		t.Fatalf("Find page 1: unexpected error: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1 ref on page 1, got %d", len(page2))
	}

	// Default sort is ascending id across pages.
	got := []uuid.UUID{page1[0].ID, page1[1].ID, page2[0].ID}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], ids[i])
		}
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

	ref := testhelper.SeedHttpRef(t, pool, user.ID)

	ref.Name = "Renamed-" + uuid.New().String()[:8]
	newDesc := "new description"
	ref.Description = &newDesc
	ref.UpdatedAt = testhelper.Now()

	updated, err := repo.Update(ctx, &ref)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.Name != ref.Name {
		t.Errorf("Name mismatch: got %q, want %q", updated.Name, ref.Name)
	}
	if updated.Description == nil || *updated.Description != newDesc {
		t.Errorf("Description mismatch: got %v, want %q", updated.Description, newDesc)
	}
	// Ownership columns never change on update.
	if !updated.IsCustom || updated.OwnerID == nil || *updated.OwnerID != user.ID {
		t.Errorf("ownership changed on update: %+v", updated.Ownership)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	ref := testhelper.SeedHttpRef(t, pool, user.ID)

	if err := repo.Delete(ctx, ref.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err := repo.GetByID(ctx, ref.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
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
