package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for bookmarks. Zero means "not rated".
const (
	MinRating = 0
	MaxRating = 5
)

// Bookmark is a saved URL with user-assigned metadata. Tags are attached via
// the bookmark_tags join relation and populated by the repository, not stored
// inline.
type Bookmark struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	URL          string
	Title        string
	Description  *string
	ThumbnailURL *string
	CategoryID   *uuid.UUID
	Rating       int
	Status       WatchStatus
	Notes        *string
	AISummary    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category *Category
	Tags     []Tag
}

// TagIDs returns the identifiers of the attached tags.
func (b *Bookmark) TagIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.Tags))
	for i, t := range b.Tags {
		ids[i] = t.ID
	}
	return ids
}

// BookmarkUpdateParams carries partial updates for a bookmark row.
// nil means "don't change". For nullable columns, a pointer to the empty
// string clears the value (set NULL).
type BookmarkUpdateParams struct {
	URL           *string
	Title         *string
	Description   *string
	ThumbnailURL  *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	Rating        *int
	Status        *WatchStatus
	Notes         *string
}

// IsEmpty reports whether the params change nothing on the bookmark row.
// An update may still be meaningful with empty params when only the tag set
// is being replaced.
func (p BookmarkUpdateParams) IsEmpty() bool {
	return p.URL == nil && p.Title == nil && p.Description == nil &&
		p.ThumbnailURL == nil && p.CategoryID == nil && !p.ClearCategory &&
		p.Rating == nil && p.Status == nil && p.Notes == nil
}
