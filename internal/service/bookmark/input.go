package bookmark

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

const (
	maxTitleLen    = 500
	maxNotesLen    = 5000
	maxTagsPerItem = 50
	maxBatchSize   = 200
)

// CreateBookmarkInput holds the parameters for creating a bookmark.
type CreateBookmarkInput struct {
	URL          string
	Title        string
	Description  *string
	ThumbnailURL *string
	CategoryID   *uuid.UUID
	Rating       int
	Status       domain.WatchStatus // empty means unwatched
	Notes        *string
	Tags         []domain.TagRef
}

// Validate checks all fields and collects all errors.
func (i CreateBookmarkInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateURL(i.URL)...)

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 500 characters"})
	}

	if i.Rating < domain.MinRating || i.Rating > domain.MaxRating {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 0 and 5"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of unwatched, watching, watched"})
	}
	if i.Notes != nil && len(*i.Notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 5000 characters"})
	}
	if len(i.Tags) > maxTagsPerItem {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "max 50 tags"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateBookmarkInput holds the parameters for updating a bookmark.
// nil pointers mean "don't change". Tags: nil leaves links untouched, a
// non-nil (possibly empty) slice replaces the full tag set.
type UpdateBookmarkInput struct {
	BookmarkID    uuid.UUID
	URL           *string
	Title         *string
	Description   *string
	ThumbnailURL  *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	Rating        *int
	Status        *domain.WatchStatus
	Notes         *string
	Tags          *[]domain.TagRef
}

// Validate checks all fields and collects all errors.
func (i UpdateBookmarkInput) Validate() error {
	var errs []domain.FieldError

	if i.BookmarkID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "bookmark_id", Message: "required"})
	}
	if i.URL != nil {
		errs = append(errs, validateURL(*i.URL)...)
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > maxTitleLen {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 500 characters"})
		}
	}
	if i.CategoryID != nil && i.ClearCategory {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "cannot set and clear at once"})
	}
	if i.Rating != nil && (*i.Rating < domain.MinRating || *i.Rating > domain.MaxRating) {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 0 and 5"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of unwatched, watching, watched"})
	}
	if i.Notes != nil && len(*i.Notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 5000 characters"})
	}
	if i.Tags != nil && len(*i.Tags) > maxTagsPerItem {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "max 50 tags"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteBookmarkInput holds the parameters for deleting one bookmark.
type DeleteBookmarkInput struct {
	BookmarkID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteBookmarkInput) Validate() error {
	if i.BookmarkID == uuid.Nil {
		return domain.NewValidationError("bookmark_id", "required")
	}
	return nil
}

// DeleteBookmarksInput holds the parameters for deleting a set of bookmarks.
type DeleteBookmarksInput struct {
	BookmarkIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteBookmarksInput) Validate() error {
	var errs []domain.FieldError
	if len(i.BookmarkIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "bookmark_ids", Message: "at least one bookmark required"})
	}
	if len(i.BookmarkIDs) > maxBatchSize {
		errs = append(errs, domain.FieldError{Field: "bookmark_ids", Message: "max 200 bookmarks per batch"})
	}
	for _, id := range i.BookmarkIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "bookmark_ids", Message: "contains an empty id"})
			break
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateStatusInput holds the parameters for a bulk status update.
type UpdateStatusInput struct {
	BookmarkIDs []uuid.UUID
	Status      domain.WatchStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateStatusInput) Validate() error {
	var errs []domain.FieldError
	if len(i.BookmarkIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "bookmark_ids", Message: "at least one bookmark required"})
	}
	if len(i.BookmarkIDs) > maxBatchSize {
		errs = append(errs, domain.FieldError{Field: "bookmark_ids", Message: "max 200 bookmarks per batch"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of unwatched, watching, watched"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateSummaryInput holds the parameters for storing an AI summary.
type UpdateSummaryInput struct {
	BookmarkID uuid.UUID
	Summary    string
}

// Validate checks all fields and collects all errors.
func (i UpdateSummaryInput) Validate() error {
	var errs []domain.FieldError
	if i.BookmarkID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "bookmark_id", Message: "required"})
	}
	if strings.TrimSpace(i.Summary) == "" {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateURL(raw string) []domain.FieldError {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []domain.FieldError{{Field: "url", Message: "required"}}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []domain.FieldError{{Field: "url", Message: "must be a valid http(s) URL"}}
	}
	return nil
}
