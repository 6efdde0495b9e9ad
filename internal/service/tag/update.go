package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// UpdateTag renames a tag for the authenticated user.
func (s *Service) UpdateTag(ctx context.Context, input UpdateTagInput) (*domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	tag, err := s.tags.Update(ctx, userID, input.TagID, cleanName(input.Name))
	if err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}

	s.log.InfoContext(ctx, "tag updated",
		slog.String("user_id", userID.String()),
		slog.String("tag_id", tag.ID.String()),
		slog.String("name", tag.Name),
	)

	return tag, nil
}
