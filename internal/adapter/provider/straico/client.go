// Package straico is a REST client for the Straico LLM aggregation API.
// Every method takes the per-user API key: keys live in user settings, not in
// server configuration. Calls are never retried; a failed call is re-invoked
// only by explicit user action.
package straico

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.straico.com"

// User is the account behind an API key.
type User struct {
	FirstName string
	LastName  string
	Coins     float64
	Plan      string
}

// Model is one entry of the basic model listing.
type Model struct {
	Name      string
	ID        string
	CoinCost  float64
	MaxOutput int
}

// DetailedModel extends Model with feature flags from the categorized listing.
type DetailedModel struct {
	Model
	Features []string
}

// DetailedModels is the categorized model listing.
type DetailedModels struct {
	Chat  []DetailedModel
	Image []DetailedModel
}

// CompletionRequest describes one prompt-completion call. Either Model or
// SmartSelector must be set, not both.
type CompletionRequest struct {
	Model         string
	SmartSelector string // pricing method: quality, balance or budget
	Message       string
	Temperature   float64
	MaxTokens     int
}

// CompletionResult is the first completion choice plus usage accounting.
type CompletionResult struct {
	Model     string
	Content   string
	WordsIn   int
	WordsOut  int
	CoinsUsed float64
}

// Client calls the Straico REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client with the default Straico API URL.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, timeout, logger)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "straico"),
	}
}

// GetUser returns the account behind the API key. Doubles as key validation:
// an invalid key yields an *APIError with KindInvalidKey.
func (c *Client) GetUser(ctx context.Context, apiKey string) (*User, error) {
	var payload apiEnvelope[apiUser]
	if err := c.do(ctx, http.MethodGet, "/v0/user", apiKey, nil, &payload); err != nil {
		return nil, err
	}

	return &User{
		FirstName: payload.Data.FirstName,
		LastName:  payload.Data.LastName,
		Coins:     payload.Data.Coins,
		Plan:      payload.Data.Plan,
	}, nil
}

// ListModels returns the flat model listing.
func (c *Client) ListModels(ctx context.Context, apiKey string) ([]Model, error) {
	var payload apiEnvelope[[]apiModel]
	if err := c.do(ctx, http.MethodGet, "/v0/models", apiKey, nil, &payload); err != nil {
		return nil, err
	}

	models := make([]Model, len(payload.Data))
	for i, m := range payload.Data {
		models[i] = Model{
			Name:      m.Name,
			ID:        m.Model,
			CoinCost:  m.Pricing.Coins,
			MaxOutput: m.MaxOutput,
		}
	}

	return models, nil
}

// ListModelsDetailed returns the categorized model listing.
func (c *Client) ListModelsDetailed(ctx context.Context, apiKey string) (*DetailedModels, error) {
	var payload apiEnvelope[apiDetailedModels]
	if err := c.do(ctx, http.MethodGet, "/v1/models", apiKey, nil, &payload); err != nil {
		return nil, err
	}

	return &DetailedModels{
		Chat:  mapDetailed(payload.Data.Chat),
		Image: mapDetailed(payload.Data.Image),
	}, nil
}

// Complete runs one prompt completion. With SmartSelector set, the provider
// picks the model; the chosen model's identifier is returned in the result.
func (c *Client) Complete(ctx context.Context, apiKey string, req CompletionRequest) (*CompletionResult, error) {
	body := completionRequest{
		Message:     req.Message,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SmartSelector != "" {
		body.SmartSelector = &smartSelector{Quantity: 1, PricingMethod: req.SmartSelector}
	} else {
		body.Models = []string{req.Model}
	}

	var payload apiEnvelope[apiCompletion]
	if err := c.do(ctx, http.MethodPost, "/v1/prompt/completion", apiKey, body, &payload); err != nil {
		return nil, err
	}

	for model, mc := range payload.Data.Completions {
		if len(mc.Completion.Choices) == 0 {
			continue
		}
		return &CompletionResult{
			Model:     model,
			Content:   mc.Completion.Choices[0].Message.Content,
			WordsIn:   mc.Words.Input,
			WordsOut:  mc.Words.Output,
			CoinsUsed: mc.Price.Total,
		}, nil
	}

	return nil, &APIError{Kind: KindServerError, Message: "completion response contained no choices"}
}

func mapDetailed(in []apiDetailedModel) []DetailedModel {
	out := make([]DetailedModel, len(in))
	for i, m := range in {
		out[i] = DetailedModel{
			Model: Model{
				Name:      m.Name,
				ID:        m.Model,
				CoinCost:  m.Pricing.Coins,
				MaxOutput: m.MaxOutput,
			},
			Features: m.Features,
		}
	}
	return out
}

// do executes one authorized request and decodes the response envelope into
// out. All failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path, apiKey string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindInvalidRequest, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Kind: KindInvalidRequest, Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.DebugContext(ctx, "straico request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "straico request failed", slog.String("path", path), slog.String("error", err.Error()))
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: fmt.Sprintf("read body: %v", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		apiErr := &APIError{
			Kind:    kindFromStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
		c.log.WarnContext(ctx, "straico error response",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("kind", string(apiErr.Kind)),
		)
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Kind: KindServerError, Status: resp.StatusCode, Message: fmt.Sprintf("decode json: %v", err)}
	}

	return nil
}

// errorMessage pulls a human-readable message out of an error body, falling
// back to the raw body when it is not the usual envelope.
func errorMessage(data []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if len(data) > 256 {
		data = data[:256]
	}
	return string(data)
}
