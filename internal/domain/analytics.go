package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is an append-only record of a user action against a
// bookmark. Events are written best-effort: losing one must never fail the
// mutation it accompanies.
type AnalyticsEvent struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	BookmarkID uuid.UUID
	Action     EventAction
	CreatedAt  time.Time
}

// AnalyticsEntry is an event joined with minimal bookmark fields for the
// dashboard. The bookmark fields are nil when the bookmark has since been
// deleted.
type AnalyticsEntry struct {
	AnalyticsEvent

	BookmarkTitle  *string
	BookmarkStatus *WatchStatus
	CategoryName   *string
}
