// Package bookmark implements the core bookmark operations: CRUD with tag
// reconciliation, bulk status updates, summary storage, and the filtered
// listing that feeds the UI.
package bookmark

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

type bookmarkRepo interface {
	GetByID(ctx context.Context, userID, bookmarkID uuid.UUID) (*domain.Bookmark, error)
	List(ctx context.Context, userID uuid.UUID, f domain.BookmarkFilter) ([]domain.Bookmark, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error)
	Update(ctx context.Context, userID, bookmarkID uuid.UUID, params domain.BookmarkUpdateParams) (*domain.Bookmark, error)
	UpdateSummary(ctx context.Context, userID, bookmarkID uuid.UUID, summary string) error
	UpdateStatusBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, status domain.WatchStatus) ([]uuid.UUID, error)
	Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error
	DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
}

type tagRepo interface {
	GetByID(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error)
	BatchLinkBookmark(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error
	UnlinkAllByBookmark(ctx context.Context, bookmarkID uuid.UUID) error
	ListByBookmarkID(ctx context.Context, bookmarkID uuid.UUID) ([]domain.Tag, error)
	ListByBookmarkIDs(ctx context.Context, bookmarkIDs []uuid.UUID) ([]domain.BookmarkTag, error)
}

type categoryRepo interface {
	GetByID(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)
}

// eventRecorder records analytics events best-effort: implementations never
// block and never report failure to the caller.
type eventRecorder interface {
	Record(ctx context.Context, userID, bookmarkID uuid.UUID, action domain.EventAction)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides bookmark management operations.
type Service struct {
	bookmarks    bookmarkRepo
	tags         tagRepo
	categories   categoryRepo
	events       eventRecorder
	tx           txManager
	log          *slog.Logger
	maxBookmarks int
}

// NewService creates a new Bookmark service. maxBookmarks caps bookmarks per
// user.
func NewService(
	log *slog.Logger,
	bookmarks bookmarkRepo,
	tags tagRepo,
	categories categoryRepo,
	events eventRecorder,
	tx txManager,
	maxBookmarks int,
) *Service {
	return &Service{
		bookmarks:    bookmarks,
		tags:         tags,
		categories:   categories,
		events:       events,
		tx:           tx,
		log:          log.With("service", "bookmark"),
		maxBookmarks: maxBookmarks,
	}
}
