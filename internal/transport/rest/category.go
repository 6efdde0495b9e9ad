package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/category"
)

// categoryService defines the minimal interface needed by CategoryHandler.
type categoryService interface {
	CreateCategory(ctx context.Context, input category.CreateCategoryInput) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, input category.UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, input category.DeleteCategoryInput) error
}

// CategoryHandler serves category endpoints.
type CategoryHandler struct {
	svc categoryService
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc categoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: logger.With("handler", "category")}
}

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Color string  `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	out := make([]categoryResponse, len(categories))
	for i := range categories {
		out[i] = *toCategoryResponse(&categories[i])
	}
	writeData(w, http.StatusOK, out)
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), category.CreateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusCreated, toCategoryResponse(c))
}

// Update handles PATCH /api/v1/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid category id")
		return
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	c, err := h.svc.UpdateCategory(r.Context(), category.UpdateCategoryInput{
		CategoryID: id,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, toCategoryResponse(c))
}

// Delete handles DELETE /api/v1/categories/{id}. Bookmarks referencing the
// category survive and become uncategorized.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid category id")
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), category.DeleteCategoryInput{CategoryID: id}); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
