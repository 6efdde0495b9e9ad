// Package tag implements the Tag repository using PostgreSQL.
// It provides CRUD operations for user-defined tags and M2M bookmark linking
// via the bookmark_tags join table.
package tag

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const tagColumns = `id, user_id, name, created_at`

const getByIDSQL = `
SELECT ` + tagColumns + ` FROM tags WHERE id = $1 AND user_id = $2`

const getByNameSQL = `
SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND lower(name) = $2`

const listByUserSQL = `
SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 ORDER BY lower(name)`

const insertSQL = `
INSERT INTO tags (user_id, name) VALUES ($1, $2)
RETURNING ` + tagColumns

// getOrCreateSQL inserts the tag unless a case-insensitive duplicate already
// exists, then selects whichever row won. Safe under concurrent submissions
// of the same name: the unique index on (user_id, lower(name)) arbitrates.
const getOrCreateSQL = `
WITH ins AS (
    INSERT INTO tags (user_id, name)
    VALUES ($1, $2)
    ON CONFLICT (user_id, lower(name)) DO NOTHING
    RETURNING id, user_id, name, created_at
)
SELECT id, user_id, name, created_at FROM ins
UNION ALL
SELECT id, user_id, name, created_at FROM tags
WHERE user_id = $1 AND lower(name) = lower($2)
LIMIT 1`

const updateSQL = `
UPDATE tags SET name = $3 WHERE id = $1 AND user_id = $2
RETURNING ` + tagColumns

const deleteSQL = `DELETE FROM tags WHERE id = $1 AND user_id = $2`

const countByUserSQL = `SELECT count(*) FROM tags WHERE user_id = $1`

const linkSQL = `
INSERT INTO bookmark_tags (bookmark_id, tag_id) VALUES ($1, $2)
ON CONFLICT (bookmark_id, tag_id) DO NOTHING`

const batchLinkSQL = `
INSERT INTO bookmark_tags (bookmark_id, tag_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`

const unlinkAllByBookmarkSQL = `DELETE FROM bookmark_tags WHERE bookmark_id = $1`

const unlinkAllByTagSQL = `DELETE FROM bookmark_tags WHERE tag_id = $1`

const listByBookmarkIDSQL = `
SELECT t.id, t.user_id, t.name, t.created_at
FROM bookmark_tags bt
JOIN tags t ON bt.tag_id = t.id
WHERE bt.bookmark_id = $1
ORDER BY lower(t.name)`

const listByBookmarkIDsSQL = `
SELECT bt.bookmark_id, t.id, t.user_id, t.name, t.created_at
FROM bookmark_tags bt
JOIN tags t ON bt.tag_id = t.id
WHERE bt.bookmark_id = ANY($1::uuid[])
ORDER BY bt.bookmark_id, lower(t.name)`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a tag by primary key with user_id filter.
// Returns domain.ErrNotFound if the tag does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTagRow(querier.QueryRow(ctx, getByIDSQL, tagID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "tag", tagID)
	}

	return t, nil
}

// GetByName returns a tag by case-insensitive name lookup. The name is
// normalized (trim/lower/space-collapse) before comparison.
// Returns domain.ErrNotFound when no tag with that name exists for the user.
func (r *Repo) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTagRow(querier.QueryRow(ctx, getByNameSQL, userID, domain.NormalizeTagName(name)))
	if err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}

	return t, nil
}

// List returns all tags for a user ordered by name.
// Returns an empty slice (not nil) when the user has no tags.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListByBookmarkID returns all tags linked to a bookmark, ordered by name.
// Returns an empty slice (not nil) when no tags are linked.
func (r *Repo) ListByBookmarkID(ctx context.Context, bookmarkID uuid.UUID) ([]domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByBookmarkIDSQL, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("list tags by bookmark_id: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListByBookmarkIDs returns tags for multiple bookmarks in one query.
// Results include BookmarkID for grouping by the caller.
func (r *Repo) ListByBookmarkIDs(ctx context.Context, bookmarkIDs []uuid.UUID) ([]domain.BookmarkTag, error) {
	if len(bookmarkIDs) == 0 {
		return []domain.BookmarkTag{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByBookmarkIDsSQL, bookmarkIDs)
	if err != nil {
		return nil, fmt.Errorf("list tags by bookmark_ids: %w", err)
	}
	defer rows.Close()

	var result []domain.BookmarkTag
	for rows.Next() {
		var (
			bookmarkID uuid.UUID
			id         uuid.UUID
			userID     uuid.UUID
			name       string
			createdAt  time.Time
		)
		if err := rows.Scan(&bookmarkID, &id, &userID, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("list tags by bookmark_ids: %w", err)
		}
		result = append(result, domain.BookmarkTag{
			BookmarkID: bookmarkID,
			Tag:        domain.Tag{ID: id, UserID: userID, Name: name, CreatedAt: createdAt},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags by bookmark_ids: %w", err)
	}

	if result == nil {
		result = []domain.BookmarkTag{}
	}

	return result, nil
}

// Count returns the number of tags for a user.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByUserSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new tag and returns the persisted domain.Tag.
// Returns domain.ErrAlreadyExists if the user already has a tag with the
// same name (case-insensitive).
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTagRow(querier.QueryRow(ctx, insertSQL, userID, name))
	if err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}

	return t, nil
}

// GetOrCreate returns the user's tag with the given name (case-insensitive),
// creating it when absent. Exactly one row per normalized name can ever
// exist, even under concurrent calls.
func (r *Repo) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTagRow(querier.QueryRow(ctx, getOrCreateSQL, userID, name))
	if err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}

	return t, nil
}

// Update renames a tag.
// Returns domain.ErrNotFound if the tag does not exist or belongs to another
// user, and domain.ErrAlreadyExists on a case-insensitive name collision.
func (r *Repo) Update(ctx context.Context, userID, tagID uuid.UUID, name string) (*domain.Tag, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTagRow(querier.QueryRow(ctx, updateSQL, tagID, userID, name))
	if err != nil {
		return nil, postgres.MapError(err, "tag", tagID)
	}

	return t, nil
}

// Delete removes a tag. CASCADE deletes its bookmark_tags rows; bookmarks are
// NOT affected. Returns domain.ErrNotFound if the tag does not exist or
// belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, tagID, userID)
	if err != nil {
		return postgres.MapError(err, "tag", tagID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Join-table operations
// ---------------------------------------------------------------------------

// LinkBookmark creates an M2M link between a bookmark and a tag.
// Idempotent: linking the same pair twice is NOT an error.
func (r *Repo) LinkBookmark(ctx context.Context, bookmarkID, tagID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, linkSQL, bookmarkID, tagID); err != nil {
		return postgres.MapError(err, "bookmark_tag", bookmarkID)
	}

	return nil
}

// BatchLinkBookmark links a bookmark to multiple tags in one statement.
func (r *Repo) BatchLinkBookmark(ctx context.Context, bookmarkID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, batchLinkSQL, bookmarkID, tagIDs); err != nil {
		return postgres.MapError(err, "bookmark_tag", bookmarkID)
	}

	return nil
}

// UnlinkAllByBookmark removes every tag link for a bookmark. Used by the
// replace semantics of bookmark updates.
func (r *Repo) UnlinkAllByBookmark(ctx context.Context, bookmarkID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlinkAllByBookmarkSQL, bookmarkID); err != nil {
		return postgres.MapError(err, "bookmark_tag", bookmarkID)
	}

	return nil
}

// UnlinkAllByTag removes every bookmark link for a tag. Used before tag
// deletion so cards reflect the removal immediately.
func (r *Repo) UnlinkAllByTag(ctx context.Context, tagID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlinkAllByTagSQL, tagID); err != nil {
		return postgres.MapError(err, "bookmark_tag", tagID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTagRow(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTags(rows pgx.Rows) ([]domain.Tag, error) {
	var result []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Tag{}
	}

	return result, nil
}
