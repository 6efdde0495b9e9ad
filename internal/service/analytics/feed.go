package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

type entryRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.AnalyticsEntry, error)
}

// Feed serves the dashboard's recent-activity listing.
type Feed struct {
	repo entryRepo
	log  *slog.Logger
}

// NewFeed creates a Feed service.
func NewFeed(log *slog.Logger, repo entryRepo) *Feed {
	return &Feed{
		repo: repo,
		log:  log.With("service", "analytics_feed"),
	}
}

// ListEvents returns the authenticated user's most recent events, newest
// first. limit <= 0 falls back to the default; oversized limits are clamped.
func (f *Feed) ListEvents(ctx context.Context, limit int) ([]domain.AnalyticsEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	entries, err := f.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analytics events: %w", err)
	}

	return entries, nil
}
