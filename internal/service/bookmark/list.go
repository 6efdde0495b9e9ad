package bookmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// GetBookmark returns one bookmark with its category and tags attached.
func (s *Service) GetBookmark(ctx context.Context, bookmarkID uuid.UUID) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if bookmarkID == uuid.Nil {
		return nil, domain.NewValidationError("bookmark_id", "required")
	}

	bookmark, err := s.bookmarks.GetByID(ctx, userID, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}

	tags, err := s.tags.ListByBookmarkID(ctx, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("load bookmark tags: %w", err)
	}
	bookmark.Tags = tags

	return bookmark, nil
}

// ListBookmarks returns the user's bookmarks matching the filter, with tags
// attached in one batched query. A failure of the tag join degrades to empty
// tag lists rather than failing the listing.
func (s *Service) ListBookmarks(ctx context.Context, filter domain.BookmarkFilter) ([]domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	filter.Normalize()

	bookmarks, err := s.bookmarks.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		return bookmarks, nil
	}

	ids := make([]uuid.UUID, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.ID
	}

	rows, err := s.tags.ListByBookmarkIDs(ctx, ids)
	if err != nil {
		s.log.WarnContext(ctx, "failed to load bookmark tags, returning bookmarks without them",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		rows = nil
	}

	byBookmark := make(map[uuid.UUID][]domain.Tag, len(bookmarks))
	for _, row := range rows {
		byBookmark[row.BookmarkID] = append(byBookmark[row.BookmarkID], row.Tag)
	}
	for i := range bookmarks {
		tags, ok := byBookmark[bookmarks[i].ID]
		if !ok {
			tags = []domain.Tag{}
		}
		bookmarks[i].Tags = tags
	}

	return bookmarks, nil
}
