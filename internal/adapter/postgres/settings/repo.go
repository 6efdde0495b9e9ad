// Package settings implements the per-user settings repository.
package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, straico_api_key, preferred_model, use_smart_selector, selector_pricing, updated_at
FROM user_settings WHERE user_id = $1`

const upsertSQL = `
INSERT INTO user_settings (user_id, straico_api_key, preferred_model, use_smart_selector, selector_pricing)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
    straico_api_key    = EXCLUDED.straico_api_key,
    preferred_model    = EXCLUDED.preferred_model,
    use_smart_selector = EXCLUDED.use_smart_selector,
    selector_pricing   = EXCLUDED.selector_pricing,
    updated_at         = now()
RETURNING user_id, straico_api_key, preferred_model, use_smart_selector, selector_pricing, updated_at`

// Get returns the user's settings. When no row exists yet, defaults are
// returned instead of an error.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSettings(querier.QueryRow(ctx, getSQL, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := domain.DefaultUserSettings(userID)
			return &defaults, nil
		}
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return s, nil
}

// Upsert stores the user's settings, creating the row on first save.
func (r *Repo) Upsert(ctx context.Context, s domain.UserSettings) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	saved, err := scanSettings(querier.QueryRow(ctx, upsertSQL,
		s.UserID, s.StraicoAPIKey, s.PreferredModel, s.UseSmartSelector, s.SelectorPricing))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", s.UserID)
	}

	return saved, nil
}

func scanSettings(row pgx.Row) (*domain.UserSettings, error) {
	var s domain.UserSettings
	err := row.Scan(&s.UserID, &s.StraicoAPIKey, &s.PreferredModel, &s.UseSmartSelector, &s.SelectorPricing, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
