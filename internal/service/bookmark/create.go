package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// CreateBookmark creates a bookmark for the authenticated user, resolving the
// submitted tag references and linking them in the same transaction.
func (s *Service) CreateBookmark(ctx context.Context, input CreateBookmarkInput) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	count, err := s.bookmarks.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}
	if count >= s.maxBookmarks {
		return nil, domain.NewValidationError("bookmarks", fmt.Sprintf("limit reached (max %d)", s.maxBookmarks))
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *input.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("category_id", "category not found")
			}
			return nil, fmt.Errorf("check category: %w", err)
		}
	}

	tags, err := s.resolveTags(ctx, userID, input.Tags)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.WatchStatusUnwatched
	}

	bookmark := &domain.Bookmark{
		UserID:       userID,
		URL:          strings.TrimSpace(input.URL),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		CategoryID:   input.CategoryID,
		Rating:       input.Rating,
		Status:       status,
		Notes:        input.Notes,
	}

	var created *domain.Bookmark
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.bookmarks.Create(ctx, bookmark)
		if err != nil {
			return fmt.Errorf("create bookmark: %w", err)
		}
		if len(tags) > 0 {
			if err := s.tags.BatchLinkBookmark(ctx, created.ID, tagIDs(tags)); err != nil {
				return fmt.Errorf("link tags: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	created.Tags = tags

	s.events.Record(ctx, userID, created.ID, domain.EventActionCreate)

	s.log.InfoContext(ctx, "bookmark created",
		slog.String("user_id", userID.String()),
		slog.String("bookmark_id", created.ID.String()),
		slog.Int("tags", len(tags)),
	)

	return created, nil
}
