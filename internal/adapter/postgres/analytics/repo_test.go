package analytics_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/analytics"
	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

func newRepo(t *testing.T) (*analytics.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return analytics.New(pool), pool
}

func TestRepo_Create_AndListByUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bm := testhelper.SeedBookmark(t, pool, user.ID)

	event := &domain.AnalyticsEvent{
		UserID:     user.ID,
		BookmarkID: bm.ID,
		Action:     domain.EventActionCreate,
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if event.ID == uuid.Nil {
		t.Error("expected non-nil event ID")
	}
	if event.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}

	entries, err := repo.ListByUser(ctx, user.ID, 50)
	if err != nil {
		t.Fatalf("ListByUser: unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Action != domain.EventActionCreate {
		t.Errorf("Action mismatch: got %q", entry.Action)
	}
	if entry.BookmarkTitle == nil || *entry.BookmarkTitle != bm.Title {
		t.Errorf("BookmarkTitle mismatch: got %v, want %q", entry.BookmarkTitle, bm.Title)
	}
	if entry.BookmarkStatus == nil || *entry.BookmarkStatus != domain.WatchStatusUnwatched {
		t.Errorf("BookmarkStatus mismatch: got %v", entry.BookmarkStatus)
	}
}

func TestRepo_ListByUser_SurvivesBookmarkDelete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bm := testhelper.SeedBookmark(t, pool, user.ID)

	event := &domain.AnalyticsEvent{
		UserID:     user.ID,
		BookmarkID: bm.ID,
		Action:     domain.EventActionDelete,
	}
	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := pool.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, bm.ID); err != nil {
		t.Fatalf("delete bookmark: %v", err)
	}

	entries, err := repo.ListByUser(ctx, user.ID, 50)
	if err != nil {
		t.Fatalf("ListByUser: unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	// Bookmark join fields are nil for deleted bookmarks; the event survives.
	if entries[0].BookmarkTitle != nil {
		t.Errorf("expected nil BookmarkTitle, got %v", entries[0].BookmarkTitle)
	}
	if entries[0].BookmarkID != bm.ID {
		t.Errorf("BookmarkID mismatch: got %s, want %s", entries[0].BookmarkID, bm.ID)
	}
}

func TestRepo_ListByUser_NewestFirstAndLimit(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)
	bm := testhelper.SeedBookmark(t, pool, user.ID)

	actions := []domain.EventAction{
		domain.EventActionCreate,
		domain.EventActionUpdate,
		domain.EventActionGenerateSummary,
	}
	for _, a := range actions {
		event := &domain.AnalyticsEvent{UserID: user.ID, BookmarkID: bm.ID, Action: a}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("Create %q: %v", a, err)
		}
	}

	entries, err := repo.ListByUser(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("ListByUser: unexpected error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != domain.EventActionGenerateSummary {
		t.Errorf("expected newest event first, got %q", entries[0].Action)
	}
}

func TestRepo_ListByUser_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	user := testhelper.SeedUser(t, pool)

	entries, err := repo.ListByUser(context.Background(), user.ID, 50)
	if err != nil {
		t.Fatalf("ListByUser: unexpected error: %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}
