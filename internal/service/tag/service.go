// Package tag implements tag management for the authenticated user.
package tag

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

type tagRepo interface {
	GetByID(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error)
	Update(ctx context.Context, userID, tagID uuid.UUID, name string) (*domain.Tag, error)
	Delete(ctx context.Context, userID, tagID uuid.UUID) error
	UnlinkAllByTag(ctx context.Context, tagID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides tag management operations.
type Service struct {
	tags    tagRepo
	tx      txManager
	log     *slog.Logger
	maxTags int
}

// NewService creates a new Tag service. maxTags caps tags per user.
func NewService(log *slog.Logger, tags tagRepo, tx txManager, maxTags int) *Service {
	return &Service{
		tags:    tags,
		tx:      tx,
		log:     log.With("service", "tag"),
		maxTags: maxTags,
	}
}
