package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/bookmark"
	"github.com/heartmarshall/linkmark-backend/internal/service/summary"
)

// bookmarkService defines the minimal interface needed by BookmarkHandler.
type bookmarkService interface {
	CreateBookmark(ctx context.Context, input bookmark.CreateBookmarkInput) (*domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, input bookmark.UpdateBookmarkInput) (*domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, input bookmark.DeleteBookmarkInput) error
	DeleteBookmarks(ctx context.Context, input bookmark.DeleteBookmarksInput) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, input bookmark.UpdateStatusInput) ([]uuid.UUID, error)
	GetBookmark(ctx context.Context, bookmarkID uuid.UUID) (*domain.Bookmark, error)
	ListBookmarks(ctx context.Context, filter domain.BookmarkFilter) ([]domain.Bookmark, error)
}

// summaryService defines the minimal interface needed for summary generation.
type summaryService interface {
	Generate(ctx context.Context, bookmarkID uuid.UUID) (*summary.Result, error)
}

// BookmarkHandler serves bookmark endpoints.
type BookmarkHandler struct {
	svc       bookmarkService
	summaries summaryService
	log       *slog.Logger
}

// NewBookmarkHandler creates a BookmarkHandler.
func NewBookmarkHandler(svc bookmarkService, summaries summaryService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{svc: svc, summaries: summaries, log: logger.With("handler", "bookmark")}
}

type tagRefRequest struct {
	ID   *string `json:"id,omitempty"`
	Name string  `json:"name,omitempty"`
}

type createBookmarkRequest struct {
	URL          string          `json:"url"`
	Title        string          `json:"title"`
	Description  *string         `json:"description,omitempty"`
	ThumbnailURL *string         `json:"thumbnailUrl,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	Rating       int             `json:"rating"`
	Status       string          `json:"status,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	Tags         []tagRefRequest `json:"tags,omitempty"`
}

type updateBookmarkRequest struct {
	URL           *string          `json:"url,omitempty"`
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	ThumbnailURL  *string          `json:"thumbnailUrl,omitempty"`
	CategoryID    *string          `json:"categoryId,omitempty"`
	ClearCategory bool             `json:"clearCategory,omitempty"`
	Rating        *int             `json:"rating,omitempty"`
	Status        *string          `json:"status,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Tags          *[]tagRefRequest `json:"tags,omitempty"`
}

type batchStatusRequest struct {
	BookmarkIDs []string `json:"bookmarkIds"`
	Status      string   `json:"status"`
}

type batchDeleteRequest struct {
	BookmarkIDs []string `json:"bookmarkIds"`
}

type summaryResponse struct {
	BookmarkID string  `json:"bookmarkId"`
	Summary    string  `json:"summary"`
	Model      string  `json:"model"`
	CoinsUsed  float64 `json:"coinsUsed"`
}

// toTagRefs converts request tag references. A malformed id is treated as a
// client-side placeholder so the tag resolves by name.
func toTagRefs(refs []tagRefRequest) []domain.TagRef {
	out := make([]domain.TagRef, len(refs))
	for i, ref := range refs {
		out[i] = domain.TagRef{Name: ref.Name}
		if ref.ID != nil {
			if id, err := uuid.Parse(*ref.ID); err == nil {
				out[i].ID = &id
			}
		}
	}
	return out
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// List handles GET /api/v1/bookmarks.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	bookmarks, err := h.svc.ListBookmarks(r.Context(), filter)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, toBookmarkResponses(bookmarks))
}

func parseListFilter(r *http.Request) (domain.BookmarkFilter, error) {
	q := r.URL.Query()
	var f domain.BookmarkFilter

	if s := q.Get("search"); s != "" {
		f.Search = &s
	}
	if s := q.Get("status"); s != "" {
		status := domain.WatchStatus(s)
		if !status.IsValid() {
			return f, domain.NewValidationError("status", "must be one of unwatched, watching, watched")
		}
		f.Status = &status
	}
	if s := q.Get("categoryId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, domain.NewValidationError("categoryId", "invalid uuid")
		}
		f.CategoryID = &id
	}
	if q.Get("uncategorized") == "true" {
		f.Uncategorized = true
	}
	if s := q.Get("tagId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, domain.NewValidationError("tagId", "invalid uuid")
		}
		f.TagID = &id
	}
	if s := q.Get("minRating"); s != "" {
		rating, err := strconv.Atoi(s)
		if err != nil || rating < domain.MinRating || rating > domain.MaxRating {
			return f, domain.NewValidationError("minRating", "must be an integer between 0 and 5")
		}
		f.MinRating = &rating
	}
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			return f, domain.NewValidationError("limit", "must be an integer")
		}
		f.Limit = limit
	}
	if s := q.Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil {
			return f, domain.NewValidationError("offset", "must be an integer")
		}
		f.Offset = offset
	}

	return f, nil
}

// Get handles GET /api/v1/bookmarks/{id}.
func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid bookmark id")
		return
	}

	b, err := h.svc.GetBookmark(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, toBookmarkResponse(b))
}

// Create handles POST /api/v1/bookmarks.
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid category id")
		return
	}

	b, err := h.svc.CreateBookmark(r.Context(), bookmark.CreateBookmarkInput{
		URL:          req.URL,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		CategoryID:   categoryID,
		Rating:       req.Rating,
		Status:       domain.WatchStatus(req.Status),
		Notes:        req.Notes,
		Tags:         toTagRefs(req.Tags),
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusCreated, toBookmarkResponse(b))
}

// Update handles PATCH /api/v1/bookmarks/{id}.
func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid bookmark id")
		return
	}

	var req updateBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid category id")
		return
	}

	input := bookmark.UpdateBookmarkInput{
		BookmarkID:    id,
		URL:           req.URL,
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailURL:  req.ThumbnailURL,
		CategoryID:    categoryID,
		ClearCategory: req.ClearCategory,
		Notes:         req.Notes,
	}
	if req.Rating != nil {
		input.Rating = req.Rating
	}
	if req.Status != nil {
		status := domain.WatchStatus(*req.Status)
		input.Status = &status
	}
	if req.Tags != nil {
		refs := toTagRefs(*req.Tags)
		input.Tags = &refs
	}

	b, err := h.svc.UpdateBookmark(r.Context(), input)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, toBookmarkResponse(b))
}

// Delete handles DELETE /api/v1/bookmarks/{id}.
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid bookmark id")
		return
	}

	if err := h.svc.DeleteBookmark(r.Context(), bookmark.DeleteBookmarkInput{BookmarkID: id}); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BatchDelete handles POST /api/v1/bookmarks/batch/delete.
func (h *BookmarkHandler) BatchDelete(w http.ResponseWriter, r *http.Request) {
	var req batchDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	ids, err := parseUUIDs(req.BookmarkIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid bookmark id")
		return
	}

	deleted, err := h.svc.DeleteBookmarks(r.Context(), bookmark.DeleteBookmarksInput{BookmarkIDs: ids})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"deletedIds": idListResponse(deleted)})
}

// BatchStatus handles POST /api/v1/bookmarks/batch/status.
func (h *BookmarkHandler) BatchStatus(w http.ResponseWriter, r *http.Request) {
	var req batchStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	ids, err := parseUUIDs(req.BookmarkIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid bookmark id")
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), bookmark.UpdateStatusInput{
		BookmarkIDs: ids,
		Status:      domain.WatchStatus(req.Status),
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{"updatedIds": idListResponse(updated)})
}

// GenerateSummary handles POST /api/v1/bookmarks/{id}/summary.
func (h *BookmarkHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid bookmark id")
		return
	}

	result, err := h.summaries.Generate(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, summaryResponse{
		BookmarkID: result.BookmarkID.String(),
		Summary:    result.Summary,
		Model:      result.Model,
		CoinsUsed:  result.CoinsUsed,
	})
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
