package tag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/tag"
	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*tag.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return tag.New(pool), pool
}

// ---------------------------------------------------------------------------
// Create + GetByID tests
// ---------------------------------------------------------------------------

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, user.ID, "golang-"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil tag ID")
	}
	if created.UserID != user.ID {
		t.Errorf("UserID mismatch: got %s, want %s", created.UserID, user.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}

	got, err := repo.GetByID(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Name != created.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, created.Name)
	}
}

func TestRepo_Create_DuplicateCaseInsensitive(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	name := "docker-" + uuid.New().String()[:8]
	if _, err := repo.Create(ctx, user.ID, name); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	// Same name with different casing -> ErrAlreadyExists.
	_, err := repo.Create(ctx, user.ID, "DOCKER-"+name[7:])
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Create_SameNameDifferentUsers(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user1 := testhelper.SeedUser(t, pool)
	user2 := testhelper.SeedUser(t, pool)

	name := "shared-" + uuid.New().String()[:8]
	if _, err := repo.Create(ctx, user1.ID, name); err != nil {
		t.Fatalf("Create user1: %v", err)
	}
	if _, err := repo.Create(ctx, user2.ID, name); err != nil {
		t.Errorf("Create user2 with same name: unexpected error: %v", err)
	}
}

func TestRepo_GetByID_WrongUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	created := testhelper.SeedTag(t, pool, owner.ID, "private-"+uuid.New().String()[:8])

	_, err := repo.GetByID(ctx, other.ID, created.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// GetOrCreate tests
// ---------------------------------------------------------------------------

func TestRepo_GetOrCreate_New(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	name := "fresh-" + uuid.New().String()[:8]
	got, err := repo.GetOrCreate(ctx, user.ID, name)
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("expected non-nil tag ID")
	}
	if got.Name != name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, name)
	}
}

func TestRepo_GetOrCreate_ExistingCaseInsensitive(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	name := "react-" + uuid.New().String()[:8]
	existing := testhelper.SeedTag(t, pool, user.ID, name)

	// Different casing must resolve to the existing row, not create a new one.
	got, err := repo.GetOrCreate(ctx, user.ID, "REACT-"+name[6:])
	if err != nil {
		t.Fatalf("GetOrCreate: unexpected error: %v", err)
	}

	if got.ID != existing.ID {
		t.Errorf("expected existing tag %s, got %s", existing.ID, got.ID)
	}
	// Original casing is preserved.
	if got.Name != name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, name)
	}

	count, err := repo.Count(ctx, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 tag, got %d", count)
	}
}

// ---------------------------------------------------------------------------
// Link / unlink tests
// ---------------------------------------------------------------------------

func TestRepo_LinkBookmark_Idempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bookmark := testhelper.SeedBookmark(t, pool, user.ID)
	tg := testhelper.SeedTag(t, pool, user.ID, "link-"+uuid.New().String()[:8])

	if err := repo.LinkBookmark(ctx, bookmark.ID, tg.ID); err != nil {
		t.Fatalf("LinkBookmark: %v", err)
	}
	// Second link of the same pair must not error.
	if err := repo.LinkBookmark(ctx, bookmark.ID, tg.ID); err != nil {
		t.Errorf("LinkBookmark repeat: unexpected error: %v", err)
	}

	tags, err := repo.ListByBookmarkID(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("ListByBookmarkID: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("expected 1 linked tag, got %d", len(tags))
	}
}

func TestRepo_BatchLinkBookmark(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bookmark := testhelper.SeedBookmark(t, pool, user.ID)

	tag1 := testhelper.SeedTag(t, pool, user.ID, "batch1-"+uuid.New().String()[:8])
	tag2 := testhelper.SeedTag(t, pool, user.ID, "batch2-"+uuid.New().String()[:8])

	if err := repo.BatchLinkBookmark(ctx, bookmark.ID, []uuid.UUID{tag1.ID, tag2.ID}); err != nil {
		t.Fatalf("BatchLinkBookmark: %v", err)
	}

	tags, err := repo.ListByBookmarkID(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("ListByBookmarkID: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("expected 2 linked tags, got %d", len(tags))
	}
}

func TestRepo_UnlinkAllByBookmark(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bookmark := testhelper.SeedBookmark(t, pool, user.ID)
	tg := testhelper.SeedTag(t, pool, user.ID, "unlink-"+uuid.New().String()[:8])
	testhelper.LinkTag(t, pool, bookmark.ID, tg.ID)

	if err := repo.UnlinkAllByBookmark(ctx, bookmark.ID); err != nil {
		t.Fatalf("UnlinkAllByBookmark: %v", err)
	}

	tags, err := repo.ListByBookmarkID(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("ListByBookmarkID: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected 0 linked tags, got %d", len(tags))
	}

	// The tag itself survives.
	if _, err := repo.GetByID(ctx, user.ID, tg.ID); err != nil {
		t.Errorf("GetByID after unlink: unexpected error: %v", err)
	}
}

func TestRepo_ListByBookmarkIDs_Grouping(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	bm1 := testhelper.SeedBookmark(t, pool, user.ID)
	bm2 := testhelper.SeedBookmark(t, pool, user.ID)
	bm3 := testhelper.SeedBookmark(t, pool, user.ID) // no tags

	tag1 := testhelper.SeedTag(t, pool, user.ID, "grp1-"+uuid.New().String()[:8])
	tag2 := testhelper.SeedTag(t, pool, user.ID, "grp2-"+uuid.New().String()[:8])

	testhelper.LinkTag(t, pool, bm1.ID, tag1.ID)
	testhelper.LinkTag(t, pool, bm1.ID, tag2.ID)
	testhelper.LinkTag(t, pool, bm2.ID, tag1.ID)

	got, err := repo.ListByBookmarkIDs(ctx, []uuid.UUID{bm1.ID, bm2.ID, bm3.ID})
	if err != nil {
		t.Fatalf("ListByBookmarkIDs: unexpected error: %v", err)
	}

	counts := make(map[uuid.UUID]int)
	for _, row := range got {
		counts[row.BookmarkID]++
	}

	if counts[bm1.ID] != 2 {
		t.Errorf("bm1: expected 2 tags, got %d", counts[bm1.ID])
	}
	if counts[bm2.ID] != 1 {
		t.Errorf("bm2: expected 1 tag, got %d", counts[bm2.ID])
	}
	if counts[bm3.ID] != 0 {
		t.Errorf("bm3: expected 0 tags, got %d", counts[bm3.ID])
	}
}

func TestRepo_ListByBookmarkIDs_EmptyInput(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.ListByBookmarkIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListByBookmarkIDs: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected 0 rows, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Update / Delete tests
// ---------------------------------------------------------------------------

func TestRepo_Update_Rename(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	created := testhelper.SeedTag(t, pool, user.ID, "old-"+uuid.New().String()[:8])

	newName := "new-" + uuid.New().String()[:8]
	updated, err := repo.Update(ctx, user.ID, created.ID, newName)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("Name mismatch: got %q, want %q", updated.Name, newName)
	}
}

func TestRepo_Delete_CascadesLinks(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bookmark := testhelper.SeedBookmark(t, pool, user.ID)
	tg := testhelper.SeedTag(t, pool, user.ID, "doomed-"+uuid.New().String()[:8])
	testhelper.LinkTag(t, pool, bookmark.ID, tg.ID)

	if err := repo.Delete(ctx, user.ID, tg.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	_, err := repo.GetByID(ctx, user.ID, tg.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)

	// Join rows are gone; the bookmark survives.
	tags, err := repo.ListByBookmarkID(ctx, bookmark.ID)
	if err != nil {
		t.Fatalf("ListByBookmarkID: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected 0 linked tags after delete, got %d", len(tags))
	}

	var title string
	err = pool.QueryRow(ctx, `SELECT title FROM bookmarks WHERE id = $1`, bookmark.ID).Scan(&title)
	if err != nil {
		t.Fatalf("bookmark should survive tag delete: %v", err)
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	err := repo.Delete(ctx, user.ID, uuid.New())
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
