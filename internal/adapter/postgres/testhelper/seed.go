package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user and user_settings with default values.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$test-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	settings := domain.DefaultUserSettings(user.ID)

	_, err = pool.Exec(ctx,
		`INSERT INTO user_settings (user_id, straico_api_key, preferred_model, use_smart_selector, selector_pricing, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		settings.UserID, settings.StraicoAPIKey, settings.PreferredModel, settings.UseSmartSelector, string(settings.SelectorPricing), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user_settings: %v", err)
	}

	return user
}

// SeedCategory creates a category for the user. Returns a filled domain.Category.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Category {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	category := domain.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Category " + suffix,
		Color:     domain.DefaultCategoryColor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, user_id, name, color, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.UserID, category.Name, category.Color, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory insert category: %v", err)
	}

	return category
}

// SeedBookmark creates a bookmark without category or tags.
// Returns a filled domain.Bookmark.
func SeedBookmark(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Bookmark {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	bookmark := domain.Bookmark{
		ID:        uuid.New(),
		UserID:    userID,
		URL:       "https://example.com/video-" + suffix,
		Title:     "Bookmark " + suffix,
		Rating:    0,
		Status:    domain.WatchStatusUnwatched,
		Tags:      []domain.Tag{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO bookmarks (id, user_id, url, title, rating, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		bookmark.ID, bookmark.UserID, bookmark.URL, bookmark.Title,
		bookmark.Rating, string(bookmark.Status), bookmark.CreatedAt, bookmark.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBookmark insert bookmark: %v", err)
	}

	return bookmark
}

// SeedTag creates a tag for the user. Returns a filled domain.Tag.
func SeedTag(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string) domain.Tag {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag := domain.Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tags (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		tag.ID, tag.UserID, tag.Name, tag.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTag insert tag: %v", err)
	}

	return tag
}

// LinkTag links a tag to a bookmark directly via the join table.
func LinkTag(t *testing.T, pool *pgxpool.Pool, bookmarkID, tagID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO bookmark_tags (bookmark_id, tag_id) VALUES ($1, $2)`,
		bookmarkID, tagID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkTag insert bookmark_tag: %v", err)
	}
}
