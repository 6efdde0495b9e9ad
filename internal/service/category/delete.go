package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// DeleteCategory removes a category. Bookmarks referencing it have their
// category cleared first, in the same transaction, so no bookmark is ever
// deleted or left dangling by a category removal. The schema's ON DELETE SET
// NULL backs the same guarantee.
func (s *Service) DeleteCategory(ctx context.Context, input DeleteCategoryInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	category, err := s.categories.GetByID(ctx, userID, input.CategoryID)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}

	var cleared int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var clearErr error
		cleared, clearErr = s.bookmarks.ClearCategory(txCtx, userID, input.CategoryID)
		if clearErr != nil {
			return fmt.Errorf("clear bookmark references: %w", clearErr)
		}

		if deleteErr := s.categories.Delete(txCtx, userID, input.CategoryID); deleteErr != nil {
			return fmt.Errorf("delete category: %w", deleteErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "category deleted",
		slog.String("user_id", userID.String()),
		slog.String("category_id", input.CategoryID.String()),
		slog.String("name", category.Name),
		slog.Int("bookmarks_cleared", cleared),
	)

	return nil
}
