package bookmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// DeleteBookmark removes one bookmark. Tag links go with it via the join
// table's cascade.
func (s *Service) DeleteBookmark(ctx context.Context, input DeleteBookmarkInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.bookmarks.Delete(ctx, userID, input.BookmarkID); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	s.events.Record(ctx, userID, input.BookmarkID, domain.EventActionDelete)

	s.log.InfoContext(ctx, "bookmark deleted",
		slog.String("user_id", userID.String()),
		slog.String("bookmark_id", input.BookmarkID.String()),
	)

	return nil
}

// DeleteBookmarks removes a set of bookmarks and returns the identifiers that
// were actually deleted. Identifiers that don't exist or belong to another
// user are skipped silently.
func (s *Service) DeleteBookmarks(ctx context.Context, input DeleteBookmarksInput) ([]uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	deleted, err := s.bookmarks.DeleteBatch(ctx, userID, input.BookmarkIDs)
	if err != nil {
		return nil, fmt.Errorf("delete bookmarks: %w", err)
	}

	for _, id := range deleted {
		s.events.Record(ctx, userID, id, domain.EventActionDelete)
	}

	s.log.InfoContext(ctx, "bookmarks deleted",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(input.BookmarkIDs)),
		slog.Int("deleted", len(deleted)),
	)

	return deleted, nil
}
