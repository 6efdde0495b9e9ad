// Package bookmark implements the Bookmark repository using PostgreSQL.
// It provides CRUD operations, filtered listing, and the bulk mutations used
// by multi-select UI actions.
package bookmark

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

// Repo provides bookmark persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bookmark repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

// bookmarkColumns are the bookmark columns followed by the LEFT JOINed
// category columns, in the order expected by scanBookmark.
const bookmarkColumns = `
    b.id, b.user_id, b.url, b.title, b.description, b.thumbnail_url,
    b.category_id, b.rating, b.status, b.notes, b.ai_summary,
    b.created_at, b.updated_at,
    c.id, c.user_id, c.name, c.color, c.icon, c.created_at, c.updated_at`

const getByIDSQL = `
SELECT` + bookmarkColumns + `
FROM bookmarks b
LEFT JOIN categories c ON b.category_id = c.id
WHERE b.id = $1 AND b.user_id = $2`

const insertSQL = `
INSERT INTO bookmarks (user_id, url, title, description, thumbnail_url, category_id, rating, status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, user_id, url, title, description, thumbnail_url, category_id,
          rating, status, notes, ai_summary, created_at, updated_at`

const updateSummarySQL = `
UPDATE bookmarks
SET ai_summary = $3, updated_at = now()
WHERE id = $1 AND user_id = $2`

const updateStatusBatchSQL = `
UPDATE bookmarks
SET status = $3, updated_at = now()
WHERE id = ANY($1::uuid[]) AND user_id = $2
RETURNING id`

const deleteSQL = `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`

const deleteBatchSQL = `
DELETE FROM bookmarks
WHERE id = ANY($1::uuid[]) AND user_id = $2
RETURNING id`

const clearCategorySQL = `
UPDATE bookmarks
SET category_id = NULL, updated_at = now()
WHERE user_id = $1 AND category_id = $2`

const countByUserSQL = `SELECT count(*) FROM bookmarks WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a bookmark by primary key with user_id filter, with its
// category attached (nil when uncategorized). Tags are NOT attached here.
// Returns domain.ErrNotFound if the bookmark does not exist or belongs to
// another user.
func (r *Repo) GetByID(ctx context.Context, userID, bookmarkID uuid.UUID) (*domain.Bookmark, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDSQL, bookmarkID, userID)
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", bookmarkID)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, postgres.MapError(err, "bookmark", bookmarkID)
		}
		return nil, fmt.Errorf("bookmark %s: %w", bookmarkID, domain.ErrNotFound)
	}

	b, err := scanBookmark(rows)
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", bookmarkID)
	}

	return &b, nil
}

// ExistByIDs reports which of the given bookmark IDs exist for the user.
func (r *Repo) ExistByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `SELECT id FROM bookmarks WHERE user_id = $1 AND id = ANY($2::uuid[])`, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("exist bookmarks by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("exist bookmarks by ids: %w", err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exist bookmarks by ids: %w", err)
	}

	return result, nil
}

// Count returns the number of bookmarks for a user.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByUserSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new bookmark row and returns the persisted domain.Bookmark.
// Tags and category are not attached to the result.
func (r *Repo) Create(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, insertSQL,
		b.UserID, b.URL, b.Title,
		ptrStringToPgText(b.Description),
		ptrStringToPgText(b.ThumbnailURL),
		uuidPtrToPgUUID(b.CategoryID),
		b.Rating, string(b.Status),
		ptrStringToPgText(b.Notes),
	)

	created, err := scanBookmarkRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", uuid.Nil)
	}

	return created, nil
}

// Update applies partial updates to a bookmark row, refreshes updated_at,
// and returns the updated row. Returns domain.ErrNotFound if the bookmark
// does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID, bookmarkID uuid.UUID, params domain.BookmarkUpdateParams) (*domain.Bookmark, error) {
	query, args, err := buildUpdate(userID, bookmarkID, params)
	if err != nil {
		return nil, fmt.Errorf("build bookmark update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, query, args...)

	updated, err := scanBookmarkRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", bookmarkID)
	}

	return updated, nil
}

// UpdateSummary sets only the AI summary field and refreshes updated_at.
func (r *Repo) UpdateSummary(ctx context.Context, userID, bookmarkID uuid.UUID, summary string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSummarySQL, bookmarkID, userID, summary)
	if err != nil {
		return postgres.MapError(err, "bookmark", bookmarkID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", bookmarkID, domain.ErrNotFound)
	}

	return nil
}

// UpdateStatusBatch sets the status on all of the user's bookmarks in the id
// set with a single statement and returns the IDs actually affected.
func (r *Repo) UpdateStatusBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, status domain.WatchStatus) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, updateStatusBatchSQL, ids, userID, string(status))
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", uuid.Nil)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// Delete removes a bookmark. CASCADE deletes its bookmark_tags rows.
// Returns domain.ErrNotFound if the bookmark does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, bookmarkID, userID)
	if err != nil {
		return postgres.MapError(err, "bookmark", bookmarkID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", bookmarkID, domain.ErrNotFound)
	}

	return nil
}

// DeleteBatch removes all of the user's bookmarks in the id set with a single
// statement and returns the IDs actually deleted.
func (r *Repo) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, deleteBatchSQL, ids, userID)
	if err != nil {
		return nil, postgres.MapError(err, "bookmark", uuid.Nil)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// ClearCategory nulls category_id on every bookmark of the user that points
// at the category. Returns the number of bookmarks updated.
func (r *Repo) ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, clearCategorySQL, userID, categoryID)
	if err != nil {
		return 0, postgres.MapError(err, "bookmark", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanBookmark scans a row produced with bookmarkColumns (bookmark + LEFT
// JOINed category).
func scanBookmark(rows pgx.Rows) (domain.Bookmark, error) {
	var (
		b            domain.Bookmark
		description  pgtype.Text
		thumbnailURL pgtype.Text
		categoryID   pgtype.UUID
		status       string
		notes        pgtype.Text
		aiSummary    pgtype.Text

		catID        pgtype.UUID
		catUserID    pgtype.UUID
		catName      pgtype.Text
		catColor     pgtype.Text
		catIcon      pgtype.Text
		catCreatedAt pgtype.Timestamptz
		catUpdatedAt pgtype.Timestamptz
	)

	err := rows.Scan(
		&b.ID, &b.UserID, &b.URL, &b.Title, &description, &thumbnailURL,
		&categoryID, &b.Rating, &status, &notes, &aiSummary,
		&b.CreatedAt, &b.UpdatedAt,
		&catID, &catUserID, &catName, &catColor, &catIcon, &catCreatedAt, &catUpdatedAt,
	)
	if err != nil {
		return domain.Bookmark{}, err
	}

	b.Status = domain.WatchStatus(status)
	b.Description = pgTextToPtr(description)
	b.ThumbnailURL = pgTextToPtr(thumbnailURL)
	b.Notes = pgTextToPtr(notes)
	b.AISummary = pgTextToPtr(aiSummary)
	b.CategoryID = pgUUIDToPtr(categoryID)
	b.Tags = []domain.Tag{}

	if catID.Valid {
		b.Category = &domain.Category{
			ID:        uuid.UUID(catID.Bytes),
			UserID:    uuid.UUID(catUserID.Bytes),
			Name:      catName.String,
			Color:     catColor.String,
			Icon:      pgTextToPtr(catIcon),
			CreatedAt: catCreatedAt.Time,
			UpdatedAt: catUpdatedAt.Time,
		}
	}

	return b, nil
}

// scanBookmarkRow scans a row produced by INSERT/UPDATE ... RETURNING
// (bookmark columns only, no category join).
func scanBookmarkRow(row pgx.Row) (*domain.Bookmark, error) {
	var (
		b            domain.Bookmark
		description  pgtype.Text
		thumbnailURL pgtype.Text
		categoryID   pgtype.UUID
		status       string
		notes        pgtype.Text
		aiSummary    pgtype.Text
	)

	err := row.Scan(
		&b.ID, &b.UserID, &b.URL, &b.Title, &description, &thumbnailURL,
		&categoryID, &b.Rating, &status, &notes, &aiSummary,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.WatchStatus(status)
	b.Description = pgTextToPtr(description)
	b.ThumbnailURL = pgTextToPtr(thumbnailURL)
	b.Notes = pgTextToPtr(notes)
	b.AISummary = pgTextToPtr(aiSummary)
	b.CategoryID = pgUUIDToPtr(categoryID)
	b.Tags = []domain.Tag{}

	return &b, nil
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func uuidPtrToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func pgUUIDToPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}
