package bookmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// UpdateStatus sets the watch status on a set of bookmarks in one statement
// and returns the identifiers that were actually updated. Identifiers that
// don't exist or belong to another user are skipped silently.
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) ([]uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.bookmarks.UpdateStatusBatch(ctx, userID, input.BookmarkIDs, input.Status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	action := domain.EventActionStatusUpdate(input.Status)
	for _, id := range updated {
		s.events.Record(ctx, userID, id, action)
	}

	s.log.InfoContext(ctx, "bookmark status updated",
		slog.String("user_id", userID.String()),
		slog.String("status", string(input.Status)),
		slog.Int("requested", len(input.BookmarkIDs)),
		slog.Int("updated", len(updated)),
	)

	return updated, nil
}
