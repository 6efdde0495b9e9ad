package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a many-valued, user-defined label attached to bookmarks via the
// bookmark_tags join relation. Names are unique per user case-insensitively.
type Tag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// BookmarkTag is a tag joined with the bookmark it is linked to, used by
// batched tag lookups over many bookmarks.
type BookmarkTag struct {
	BookmarkID uuid.UUID
	Tag
}

// TagRef is a tag reference as submitted by a client. A nil ID marks a tag
// that was created client-side and has not been persisted yet; those are
// resolved by case-insensitive name lookup, reusing an existing tag before a
// new row is created.
type TagRef struct {
	ID   *uuid.UUID
	Name string
}
