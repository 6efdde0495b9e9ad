package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// CreateTag creates a tag for the authenticated user, reusing an existing tag
// when one with the same name (case-insensitive) already exists.
func (s *Service) CreateTag(ctx context.Context, input CreateTagInput) (*domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	count, err := s.tags.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}
	if count >= s.maxTags {
		return nil, domain.NewValidationError("tags", fmt.Sprintf("limit reached (max %d)", s.maxTags))
	}

	tag, err := s.tags.GetOrCreate(ctx, userID, cleanName(input.Name))
	if err != nil {
		return nil, fmt.Errorf("get or create tag: %w", err)
	}

	s.log.InfoContext(ctx, "tag created",
		slog.String("user_id", userID.String()),
		slog.String("tag_id", tag.ID.String()),
		slog.String("name", tag.Name),
	)

	return tag, nil
}

// ListTags returns all of the user's tags.
func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	tags, err := s.tags.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// cleanName trims and collapses inner whitespace while preserving casing.
// Case-insensitive comparison happens in the repository.
func cleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
