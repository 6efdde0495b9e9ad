// Package summary orchestrates AI summary generation: it resolves the user's
// Straico credentials from settings, runs one prompt completion and stores the
// result on the bookmark. It also exposes the Straico account and model
// listings behind the user's own API key.
package summary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/bookmark"
)

type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

// bookmarkService is the slice of the bookmark service used here. Storing the
// summary through it keeps the generate_summary event recording in one place.
type bookmarkService interface {
	GetBookmark(ctx context.Context, bookmarkID uuid.UUID) (*domain.Bookmark, error)
	SaveSummary(ctx context.Context, input bookmark.UpdateSummaryInput) error
}

type aiClient interface {
	GetUser(ctx context.Context, apiKey string) (*straico.User, error)
	ListModels(ctx context.Context, apiKey string) ([]straico.Model, error)
	ListModelsDetailed(ctx context.Context, apiKey string) (*straico.DetailedModels, error)
	Complete(ctx context.Context, apiKey string, req straico.CompletionRequest) (*straico.CompletionResult, error)
}

// Service generates and stores bookmark summaries via the Straico API.
type Service struct {
	settings    settingsRepo
	bookmarks   bookmarkService
	ai          aiClient
	log         *slog.Logger
	temperature float64
	maxTokens   int
}

// NewService creates a new Summary service. temperature and maxTokens apply
// to every completion request.
func NewService(log *slog.Logger, settings settingsRepo, bookmarks bookmarkService, ai aiClient, temperature float64, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Service{
		settings:    settings,
		bookmarks:   bookmarks,
		ai:          ai,
		log:         log.With("service", "summary"),
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// apiKey loads the user's settings and returns the configured Straico key.
// A missing key is a validation error so the UI can prompt for configuration.
func (s *Service) apiKey(ctx context.Context, userID uuid.UUID) (string, *domain.UserSettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if settings.StraicoAPIKey == "" {
		return "", nil, domain.NewValidationError("straico_api_key", "not configured")
	}
	return settings.StraicoAPIKey, settings, nil
}
