package domain

import "github.com/google/uuid"

// BookmarkFilter defines parameters for listing a user's bookmarks.
type BookmarkFilter struct {
	// Search performs ILIKE '%...%' on title and url.
	// nil or empty string means no text filter.
	Search *string

	// Status keeps only bookmarks with the given watch status.
	Status *WatchStatus

	// CategoryID keeps only bookmarks in the given category.
	CategoryID *uuid.UUID

	// Uncategorized keeps only bookmarks without a category.
	// Ignored when CategoryID is set.
	Uncategorized bool

	// TagID keeps only bookmarks linked to the given tag.
	TagID *uuid.UUID

	// MinRating keeps only bookmarks rated at least this value.
	MinRating *int

	// Limit is the maximum number of bookmarks to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of bookmarks to skip.
	Offset int
}

const (
	defaultFilterLimit = 50
	maxFilterLimit     = 200
)

// Normalize applies defaults and clamps values.
func (f *BookmarkFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultFilterLimit
	}
	if f.Limit > maxFilterLimit {
		f.Limit = maxFilterLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
