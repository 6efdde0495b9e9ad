package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/user"
)

// settingsService defines the minimal interface needed for settings endpoints.
type settingsService interface {
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, input user.UpdateSettingsInput) (*domain.UserSettings, error)
}

// straicoGateway defines the Straico account and model listing operations.
type straicoGateway interface {
	GetAccount(ctx context.Context) (*straico.User, error)
	ListModels(ctx context.Context) ([]straico.Model, error)
	ListModelsDetailed(ctx context.Context) (*straico.DetailedModels, error)
}

// SettingsHandler serves user settings and the Straico gateway endpoints.
type SettingsHandler struct {
	svc     settingsService
	straico straicoGateway
	log     *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, gateway straicoGateway, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, straico: gateway, log: logger.With("handler", "settings")}
}

type updateSettingsRequest struct {
	StraicoAPIKey    *string `json:"straicoApiKey"`
	PreferredModel   *string `json:"preferredModel"`
	UseSmartSelector *bool   `json:"useSmartSelector"`
	SelectorPricing  *string `json:"selectorPricing"`
}

type accountResponse struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Coins     float64 `json:"coins"`
	Plan      string  `json:"plan"`
}

type modelResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CoinCost  float64 `json:"coinCost"`
	MaxOutput int     `json:"maxOutput"`
}

type detailedModelResponse struct {
	modelResponse
	Features []string `json:"features"`
}

type detailedModelsResponse struct {
	Chat  []detailedModelResponse `json:"chat"`
	Image []detailedModelResponse `json:"image"`
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}
	writeData(w, http.StatusOK, toSettingsResponse(settings))
}

// Update handles PATCH /api/v1/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	input := user.UpdateSettingsInput{
		StraicoAPIKey:    req.StraicoAPIKey,
		PreferredModel:   req.PreferredModel,
		UseSmartSelector: req.UseSmartSelector,
	}
	if req.SelectorPricing != nil {
		pricing := domain.SelectorPricing(*req.SelectorPricing)
		input.SelectorPricing = &pricing
	}

	settings, err := h.svc.UpdateSettings(r.Context(), input)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, toSettingsResponse(settings))
}

// Account handles GET /api/v1/straico/account.
func (h *SettingsHandler) Account(w http.ResponseWriter, r *http.Request) {
	acct, err := h.straico.GetAccount(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, accountResponse{
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Coins:     acct.Coins,
		Plan:      acct.Plan,
	})
}

// Models handles GET /api/v1/straico/models.
func (h *SettingsHandler) Models(w http.ResponseWriter, r *http.Request) {
	models, err := h.straico.ListModels(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	out := make([]modelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, toModelResponse(m))
	}
	writeData(w, http.StatusOK, out)
}

// ModelsDetailed handles GET /api/v1/straico/models/detailed.
func (h *SettingsHandler) ModelsDetailed(w http.ResponseWriter, r *http.Request) {
	models, err := h.straico.ListModelsDetailed(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeData(w, http.StatusOK, detailedModelsResponse{
		Chat:  toDetailedModelResponses(models.Chat),
		Image: toDetailedModelResponses(models.Image),
	})
}

func toModelResponse(m straico.Model) modelResponse {
	return modelResponse{ID: m.ID, Name: m.Name, CoinCost: m.CoinCost, MaxOutput: m.MaxOutput}
}

func toDetailedModelResponses(models []straico.DetailedModel) []detailedModelResponse {
	out := make([]detailedModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, detailedModelResponse{
			modelResponse: toModelResponse(m.Model),
			Features:      m.Features,
		})
	}
	return out
}
