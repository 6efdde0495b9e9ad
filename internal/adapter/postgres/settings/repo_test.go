package settings_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

func newRepo(t *testing.T) (*settings.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return settings.New(pool), pool
}

func TestRepo_Get_Seeded(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	user := testhelper.SeedUser(t, pool)

	got, err := repo.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}

	if got.UserID != user.ID {
		t.Errorf("UserID mismatch: got %s", got.UserID)
	}
	if got.SelectorPricing != domain.SelectorBalance {
		t.Errorf("SelectorPricing mismatch: got %q", got.SelectorPricing)
	}
}

func TestRepo_Get_MissingRowReturnsDefaults(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	if _, err := pool.Exec(ctx, `DELETE FROM user_settings WHERE user_id = $1`, user.ID); err != nil {
		t.Fatalf("delete settings row: %v", err)
	}

	got, err := repo.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}

	if got.UserID != user.ID {
		t.Errorf("UserID mismatch: got %s", got.UserID)
	}
	if got.StraicoAPIKey != "" {
		t.Errorf("expected empty API key, got %q", got.StraicoAPIKey)
	}
	if got.SelectorPricing != domain.SelectorBalance {
		t.Errorf("SelectorPricing mismatch: got %q", got.SelectorPricing)
	}
}

func TestRepo_Upsert_CreateThenUpdate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	saved, err := repo.Upsert(ctx, domain.UserSettings{
		UserID:           user.ID,
		StraicoAPIKey:    "sk-test",
		PreferredModel:   "openai/gpt-4o-mini",
		UseSmartSelector: false,
		SelectorPricing:  domain.SelectorQuality,
	})
	if err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}
	if saved.StraicoAPIKey != "sk-test" {
		t.Errorf("StraicoAPIKey mismatch: got %q", saved.StraicoAPIKey)
	}

	saved, err = repo.Upsert(ctx, domain.UserSettings{
		UserID:           user.ID,
		StraicoAPIKey:    "sk-test",
		PreferredModel:   "",
		UseSmartSelector: true,
		SelectorPricing:  domain.SelectorBudget,
	})
	if err != nil {
		t.Fatalf("Upsert second: unexpected error: %v", err)
	}

	if !saved.UseSmartSelector {
		t.Error("UseSmartSelector should be true")
	}
	if saved.SelectorPricing != domain.SelectorBudget {
		t.Errorf("SelectorPricing mismatch: got %q", saved.SelectorPricing)
	}

	got, err := repo.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SelectorPricing != domain.SelectorBudget {
		t.Errorf("persisted SelectorPricing mismatch: got %q", got.SelectorPricing)
	}
}
