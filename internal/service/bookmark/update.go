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

// UpdateBookmark applies a partial update. A non-nil tag list replaces the
// bookmark's full tag set; a nil tag list leaves the links untouched.
func (s *Service) UpdateBookmark(ctx context.Context, input UpdateBookmarkInput) (*domain.Bookmark, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.BookmarkUpdateParams{
		Description:   input.Description,
		ThumbnailURL:  input.ThumbnailURL,
		CategoryID:    input.CategoryID,
		ClearCategory: input.ClearCategory,
		Rating:        input.Rating,
		Status:        input.Status,
		Notes:         input.Notes,
	}
	if input.URL != nil {
		url := strings.TrimSpace(*input.URL)
		params.URL = &url
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		params.Title = &title
	}

	if params.IsEmpty() && input.Tags == nil {
		return nil, domain.NewValidationError("bookmark", "no fields to update")
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *input.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("category_id", "category not found")
			}
			return nil, fmt.Errorf("check category: %w", err)
		}
	}

	var tags []domain.Tag
	if input.Tags != nil {
		var err error
		tags, err = s.resolveTags(ctx, userID, *input.Tags)
		if err != nil {
			return nil, err
		}
	}

	var updated *domain.Bookmark
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.bookmarks.Update(ctx, userID, input.BookmarkID, params)
		if err != nil {
			return fmt.Errorf("update bookmark: %w", err)
		}
		if input.Tags != nil {
			if err := s.tags.UnlinkAllByBookmark(ctx, input.BookmarkID); err != nil {
				return fmt.Errorf("unlink tags: %w", err)
			}
			if len(tags) > 0 {
				if err := s.tags.BatchLinkBookmark(ctx, input.BookmarkID, tagIDs(tags)); err != nil {
					return fmt.Errorf("link tags: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Tags != nil {
		updated.Tags = tags
	} else {
		current, err := s.tags.ListByBookmarkID(ctx, input.BookmarkID)
		if err != nil {
			s.log.WarnContext(ctx, "failed to load bookmark tags",
				slog.String("bookmark_id", input.BookmarkID.String()),
				slog.String("error", err.Error()),
			)
			current = []domain.Tag{}
		}
		updated.Tags = current
	}

	s.events.Record(ctx, userID, updated.ID, domain.EventActionUpdate)

	s.log.InfoContext(ctx, "bookmark updated",
		slog.String("user_id", userID.String()),
		slog.String("bookmark_id", updated.ID.String()),
	)

	return updated, nil
}
