package bookmark

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// List returns the user's bookmarks matching the filter, each with its
// category attached, ordered by creation time descending. Tags are NOT
// attached here; callers batch-load them via the tag repository.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.BookmarkFilter) ([]domain.Bookmark, error) {
	f.Normalize()

	builder := psql.
		Select(
			"b.id", "b.user_id", "b.url", "b.title", "b.description", "b.thumbnail_url",
			"b.category_id", "b.rating", "b.status", "b.notes", "b.ai_summary",
			"b.created_at", "b.updated_at",
			"c.id", "c.user_id", "c.name", "c.color", "c.icon", "c.created_at", "c.updated_at",
		).
		From("bookmarks b").
		LeftJoin("categories c ON b.category_id = c.id").
		Where(sq.Eq{"b.user_id": userID})

	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"b.title": pattern},
			sq.ILike{"b.url": pattern},
		})
	}

	if f.Status != nil {
		builder = builder.Where(sq.Eq{"b.status": string(*f.Status)})
	}

	switch {
	case f.CategoryID != nil:
		builder = builder.Where(sq.Eq{"b.category_id": *f.CategoryID})
	case f.Uncategorized:
		builder = builder.Where(sq.Eq{"b.category_id": nil})
	}

	if f.TagID != nil {
		builder = builder.Where(
			"EXISTS (SELECT 1 FROM bookmark_tags bt WHERE bt.bookmark_id = b.id AND bt.tag_id = ?)",
			*f.TagID,
		)
	}

	if f.MinRating != nil {
		builder = builder.Where(sq.GtOrEq{"b.rating": *f.MinRating})
	}

	query, args, err := builder.
		OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bookmark list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var result []domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("list bookmarks: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	if result == nil {
		result = []domain.Bookmark{}
	}

	return result, nil
}

// buildUpdate assembles a partial UPDATE ... RETURNING statement from
// BookmarkUpdateParams. At minimum updated_at is refreshed.
func buildUpdate(userID, bookmarkID uuid.UUID, params domain.BookmarkUpdateParams) (string, []any, error) {
	builder := psql.
		Update("bookmarks").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": bookmarkID, "user_id": userID}).
		Suffix(`RETURNING id, user_id, url, title, description, thumbnail_url, category_id,
                rating, status, notes, ai_summary, created_at, updated_at`)

	if params.URL != nil {
		builder = builder.Set("url", *params.URL)
	}
	if params.Title != nil {
		builder = builder.Set("title", *params.Title)
	}
	if params.Description != nil {
		builder = builder.Set("description", nullIfEmpty(*params.Description))
	}
	if params.ThumbnailURL != nil {
		builder = builder.Set("thumbnail_url", nullIfEmpty(*params.ThumbnailURL))
	}
	switch {
	case params.ClearCategory:
		builder = builder.Set("category_id", nil)
	case params.CategoryID != nil:
		builder = builder.Set("category_id", *params.CategoryID)
	}
	if params.Rating != nil {
		builder = builder.Set("rating", *params.Rating)
	}
	if params.Status != nil {
		builder = builder.Set("status", string(*params.Status))
	}
	if params.Notes != nil {
		builder = builder.Set("notes", nullIfEmpty(*params.Notes))
	}

	return builder.ToSql()
}

// nullIfEmpty maps "" to NULL for nullable text columns: a client sending an
// empty string is clearing the field.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
