package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// analyticsFeed defines the minimal interface needed by AnalyticsHandler.
type analyticsFeed interface {
	ListEvents(ctx context.Context, limit int) ([]domain.AnalyticsEntry, error)
}

// AnalyticsHandler serves the activity feed.
type AnalyticsHandler struct {
	feed analyticsFeed
	log  *slog.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(feed analyticsFeed, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{feed: feed, log: logger.With("handler", "analytics")}
}

// ListEvents handles GET /api/v1/analytics/events.
func (h *AnalyticsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.feed.ListEvents(r.Context(), limit)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	out := make([]eventResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEventResponse(e))
	}
	writeData(w, http.StatusOK, out)
}
