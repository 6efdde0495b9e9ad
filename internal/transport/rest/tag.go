package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/tag"
)

// tagService defines the minimal interface needed by TagHandler.
type tagService interface {
	CreateTag(ctx context.Context, input tag.CreateTagInput) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	UpdateTag(ctx context.Context, input tag.UpdateTagInput) (*domain.Tag, error)
	DeleteTag(ctx context.Context, input tag.DeleteTagInput) error
}

// TagHandler serves tag endpoints.
type TagHandler struct {
	svc tagService
	log *slog.Logger
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(svc tagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, log: logger.With("handler", "tag")}
}

type tagNameRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/v1/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}
	writeData(w, http.StatusOK, toTagResponses(tags))
}

// Create handles POST /api/v1/tags. Creating an existing name (any casing)
// returns the existing tag.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tagNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	t, err := h.svc.CreateTag(r.Context(), tag.CreateTagInput{Name: req.Name})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusCreated, toTagResponse(*t))
}

// Update handles PATCH /api/v1/tags/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid tag id")
		return
	}

	var req tagNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	t, err := h.svc.UpdateTag(r.Context(), tag.UpdateTagInput{TagID: id, Name: req.Name})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, toTagResponse(*t))
}

// Delete handles DELETE /api/v1/tags/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid tag id")
		return
	}

	if err := h.svc.DeleteTag(r.Context(), tag.DeleteTagInput{TagID: id}); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
