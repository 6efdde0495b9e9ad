package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is used when the client does not pick one.
const DefaultCategoryColor = "#6B7280"

// Category is a single-valued, user-defined grouping label for bookmarks.
// A bookmark's category reference may be null (uncategorized).
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryUpdateParams carries partial updates for a category row.
type CategoryUpdateParams struct {
	Name  *string
	Color *string
	Icon  *string // ptr("") clears the icon
}
