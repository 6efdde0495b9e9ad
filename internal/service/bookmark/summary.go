package bookmark

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// SaveSummary stores an AI-generated summary on a bookmark.
func (s *Service) SaveSummary(ctx context.Context, input UpdateSummaryInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.bookmarks.UpdateSummary(ctx, userID, input.BookmarkID, strings.TrimSpace(input.Summary)); err != nil {
		return fmt.Errorf("update summary: %w", err)
	}

	s.events.Record(ctx, userID, input.BookmarkID, domain.EventActionGenerateSummary)

	s.log.InfoContext(ctx, "bookmark summary stored",
		slog.String("user_id", userID.String()),
		slog.String("bookmark_id", input.BookmarkID.String()),
	)

	return nil
}
