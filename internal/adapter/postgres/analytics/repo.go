// Package analytics implements the append-only analytics event store.
package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// Repo provides analytics event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analytics repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO analytics_events (user_id, bookmark_id, action)
VALUES ($1, $2, $3)
RETURNING id, created_at`

// bookmark_id is deliberately not a foreign key, so events joined here may
// reference since-deleted bookmarks. The LEFT JOINs keep those rows with
// NULL bookmark fields.
const listByUserSQL = `
SELECT e.id, e.user_id, e.bookmark_id, e.action, e.created_at,
       b.title, b.status, c.name
FROM analytics_events e
LEFT JOIN bookmarks b ON b.id = e.bookmark_id
LEFT JOIN categories c ON c.id = b.category_id
WHERE e.user_id = $1
ORDER BY e.created_at DESC, e.id DESC
LIMIT $2`

// Create appends a single event. Events are never updated or deleted.
func (r *Repo) Create(ctx context.Context, event *domain.AnalyticsEvent) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, insertSQL, event.UserID, event.BookmarkID, event.Action).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "analytics_event", uuid.Nil)
	}

	return nil
}

// ListByUser returns the user's most recent events, newest first, joined with
// bookmark title/status and category name where the bookmark still exists.
// Returns an empty slice (not nil) when the user has no events.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.AnalyticsEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analytics events: %w", err)
	}
	defer rows.Close()

	var result []domain.AnalyticsEntry
	for rows.Next() {
		var (
			entry  domain.AnalyticsEntry
			title  pgtype.Text
			status pgtype.Text
			name   pgtype.Text
		)
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.BookmarkID, &entry.Action, &entry.CreatedAt,
			&title, &status, &name,
		)
		if err != nil {
			return nil, fmt.Errorf("list analytics events: %w", err)
		}
		if title.Valid {
			entry.BookmarkTitle = &title.String
		}
		if status.Valid {
			ws := domain.WatchStatus(status.String)
			entry.BookmarkStatus = &ws
		}
		if name.Valid {
			entry.CategoryName = &name.String
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analytics events: %w", err)
	}

	if result == nil {
		result = []domain.AnalyticsEntry{}
	}

	return result, nil
}
