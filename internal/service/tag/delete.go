package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// DeleteTag removes a tag for the authenticated user. Bookmark links are
// removed first in the same transaction; bookmarks themselves are untouched.
func (s *Service) DeleteTag(ctx context.Context, input DeleteTagInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	tag, err := s.tags.GetByID(ctx, userID, input.TagID)
	if err != nil {
		return fmt.Errorf("get tag: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if unlinkErr := s.tags.UnlinkAllByTag(txCtx, input.TagID); unlinkErr != nil {
			return fmt.Errorf("unlink tag: %w", unlinkErr)
		}
		if deleteErr := s.tags.Delete(txCtx, userID, input.TagID); deleteErr != nil {
			return fmt.Errorf("delete tag: %w", deleteErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "tag deleted",
		slog.String("user_id", userID.String()),
		slog.String("tag_id", input.TagID.String()),
		slog.String("name", tag.Name),
	)

	return nil
}
