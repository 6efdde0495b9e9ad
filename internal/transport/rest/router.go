package rest

import (
	"net/http"

	"github.com/heartmarshall/linkmark-backend/internal/transport/middleware"
)

// RouterDeps bundles the handlers and the auth middleware for NewRouter.
type RouterDeps struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Bookmarks  *BookmarkHandler
	Categories *CategoryHandler
	Tags       *TagHandler
	Analytics  *AnalyticsHandler
	Settings   *SettingsHandler
	AuthMW     middleware.Middleware
}

// NewRouter registers all routes on a ServeMux. Probes and auth endpoints
// are public, everything else requires a bearer token.
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /live", deps.Health.Live)

	mux.HandleFunc("POST /api/v1/auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", deps.Auth.Login)

	protected := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, deps.AuthMW(fn))
	}

	protected("GET /api/v1/me", deps.Auth.Profile)

	protected("GET /api/v1/bookmarks", deps.Bookmarks.List)
	protected("POST /api/v1/bookmarks", deps.Bookmarks.Create)
	protected("GET /api/v1/bookmarks/{id}", deps.Bookmarks.Get)
	protected("PATCH /api/v1/bookmarks/{id}", deps.Bookmarks.Update)
	protected("DELETE /api/v1/bookmarks/{id}", deps.Bookmarks.Delete)
	protected("POST /api/v1/bookmarks/batch/status", deps.Bookmarks.BatchStatus)
	protected("POST /api/v1/bookmarks/batch/delete", deps.Bookmarks.BatchDelete)
	protected("POST /api/v1/bookmarks/{id}/summary", deps.Bookmarks.GenerateSummary)

	protected("GET /api/v1/categories", deps.Categories.List)
	protected("POST /api/v1/categories", deps.Categories.Create)
	protected("PATCH /api/v1/categories/{id}", deps.Categories.Update)
	protected("DELETE /api/v1/categories/{id}", deps.Categories.Delete)

	protected("GET /api/v1/tags", deps.Tags.List)
	protected("POST /api/v1/tags", deps.Tags.Create)
	protected("PATCH /api/v1/tags/{id}", deps.Tags.Update)
	protected("DELETE /api/v1/tags/{id}", deps.Tags.Delete)

	protected("GET /api/v1/analytics/events", deps.Analytics.ListEvents)

	protected("GET /api/v1/settings", deps.Settings.Get)
	protected("PATCH /api/v1/settings", deps.Settings.Update)
	protected("GET /api/v1/straico/account", deps.Settings.Account)
	protected("GET /api/v1/straico/models", deps.Settings.Models)
	protected("GET /api/v1/straico/models/detailed", deps.Settings.ModelsDetailed)

	return mux
}
