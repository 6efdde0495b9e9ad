package summary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
	"github.com/heartmarshall/linkmark-backend/pkg/ctxutil"
)

// GetAccount returns the Straico account behind the user's configured key.
func (s *Service) GetAccount(ctx context.Context) (*straico.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	apiKey, _, err := s.apiKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.ai.GetUser(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("straico account: %w", err)
	}
	return account, nil
}

// ListModels returns the flat model listing for the user's key.
func (s *Service) ListModels(ctx context.Context) ([]straico.Model, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	apiKey, _, err := s.apiKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	models, err := s.ai.ListModels(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("straico models: %w", err)
	}
	return models, nil
}

// ListModelsDetailed returns the categorized model listing for the user's key.
func (s *Service) ListModelsDetailed(ctx context.Context) (*straico.DetailedModels, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	apiKey, _, err := s.apiKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	models, err := s.ai.ListModelsDetailed(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("straico models: %w", err)
	}
	return models, nil
}
