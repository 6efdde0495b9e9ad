// Package category implements category management for the authenticated user.
package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

type categoryRepo interface {
	GetByID(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, userID uuid.UUID, name, color string, icon *string) (*domain.Category, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

type bookmarkRepo interface {
	ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides category management operations.
type Service struct {
	categories    categoryRepo
	bookmarks     bookmarkRepo
	tx            txManager
	log           *slog.Logger
	maxCategories int
}

// NewService creates a new Category service. maxCategories caps categories
// per user.
func NewService(log *slog.Logger, categories categoryRepo, bookmarks bookmarkRepo, tx txManager, maxCategories int) *Service {
	return &Service{
		categories:    categories,
		bookmarks:     bookmarks,
		tx:            tx,
		log:           log.With("service", "category"),
		maxCategories: maxCategories,
	}
}
