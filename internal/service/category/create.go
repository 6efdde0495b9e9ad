package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// CreateCategory creates a new category for the authenticated user.
func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	count, err := s.categories.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if count >= s.maxCategories {
		return nil, domain.NewValidationError("categories", fmt.Sprintf("limit reached (max %d)", s.maxCategories))
	}

	color := input.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	category, err := s.categories.Create(ctx, userID, strings.TrimSpace(input.Name), color, input.Icon)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("user_id", userID.String()),
		slog.String("category_id", category.ID.String()),
		slog.String("name", category.Name),
	)

	return category, nil
}

// ListCategories returns all of the user's categories.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	categories, err := s.categories.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}
