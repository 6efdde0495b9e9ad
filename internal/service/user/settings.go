package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// GetSettings returns the user's settings, defaults included when nothing has
// been saved yet.
func (s *Service) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial settings update on top of the current
// values and persists the merged result.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	merged := *current
	if input.StraicoAPIKey != nil {
		merged.StraicoAPIKey = *input.StraicoAPIKey
	}
	if input.PreferredModel != nil {
		merged.PreferredModel = *input.PreferredModel
	}
	if input.UseSmartSelector != nil {
		merged.UseSmartSelector = *input.UseSmartSelector
	}
	if input.SelectorPricing != nil {
		merged.SelectorPricing = *input.SelectorPricing
	}

	saved, err := s.settings.Upsert(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.String("user_id", userID.String()),
		slog.Bool("smart_selector", saved.UseSmartSelector),
	)

	return saved, nil
}
