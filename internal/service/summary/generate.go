package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/internal/service/bookmark"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

const defaultMaxTokens = 512

// Result is a generated summary plus the usage accounting returned by the
// provider.
type Result struct {
	BookmarkID uuid.UUID
	Summary    string
	Model      string
	CoinsUsed  float64
}

// Generate produces a summary for the bookmark and stores it. The model is
// taken from the user's settings: an explicit preferred model, or the smart
// selector with the configured pricing method.
func (s *Service) Generate(ctx context.Context, bookmarkID uuid.UUID) (*Result, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if bookmarkID == uuid.Nil {
		return nil, domain.NewValidationError("bookmark_id", "required")
	}

	apiKey, settings, err := s.apiKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	bm, err := s.bookmarks.GetBookmark(ctx, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}

	req := straico.CompletionRequest{
		Message:     buildPrompt(bm),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
	switch {
	case settings.UseSmartSelector || settings.PreferredModel == "":
		pricing := settings.SelectorPricing
		if !pricing.IsValid() {
			pricing = domain.SelectorBalance
		}
		req.SmartSelector = string(pricing)
	default:
		req.Model = settings.PreferredModel
	}

	completion, err := s.ai.Complete(ctx, apiKey, req)
	if err != nil {
		return nil, fmt.Errorf("straico completion: %w", err)
	}

	text := strings.TrimSpace(completion.Content)
	if text == "" {
		return nil, errors.New("straico completion: empty response")
	}

	if err := s.bookmarks.SaveSummary(ctx, bookmark.UpdateSummaryInput{
		BookmarkID: bookmarkID,
		Summary:    text,
	}); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}

	s.log.InfoContext(ctx, "summary generated",
		slog.String("user_id", userID.String()),
		slog.String("bookmark_id", bookmarkID.String()),
		slog.String("model", completion.Model),
		slog.Float64("coins_used", completion.CoinsUsed),
	)

	return &Result{
		BookmarkID: bookmarkID,
		Summary:    text,
		Model:      completion.Model,
		CoinsUsed:  completion.CoinsUsed,
	}, nil
}

// buildPrompt assembles the single summary prompt from the bookmark's
// metadata. Only non-empty fields are included.
func buildPrompt(b *domain.Bookmark) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following saved link in 2-3 sentences. ")
	sb.WriteString("Focus on what the content is about and why it might be worth watching or reading.\n\n")
	fmt.Fprintf(&sb, "Title: %s\nURL: %s\n", b.Title, b.URL)
	if b.Description != nil && *b.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", *b.Description)
	}
	if b.Notes != nil && *b.Notes != "" {
		fmt.Fprintf(&sb, "User notes: %s\n", *b.Notes)
	}
	return sb.String()
}
