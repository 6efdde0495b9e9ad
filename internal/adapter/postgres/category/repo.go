// Package category implements the Category repository using PostgreSQL.
package category

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const categoryColumns = `id, user_id, name, color, icon, created_at, updated_at`

const getByIDSQL = `
SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`

const listByUserSQL = `
SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY lower(name)`

const insertSQL = `
INSERT INTO categories (user_id, name, color, icon)
VALUES ($1, $2, $3, $4)
RETURNING ` + categoryColumns

const deleteSQL = `DELETE FROM categories WHERE id = $1 AND user_id = $2`

const countByUserSQL = `SELECT count(*) FROM categories WHERE user_id = $1`

// GetByID returns a category by primary key with user_id filter.
// Returns domain.ErrNotFound if it does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategoryRow(querier.QueryRow(ctx, getByIDSQL, categoryID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "category", categoryID)
	}

	return c, nil
}

// List returns all categories for a user ordered by name.
// Returns an empty slice (not nil) when the user has none.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if result == nil {
		result = []domain.Category{}
	}

	return result, nil
}

// Count returns the number of categories for a user.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countByUserSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

// Create inserts a new category and returns the persisted row.
// Returns domain.ErrAlreadyExists on a duplicate (user_id, name) pair.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, name, color string, icon *string) (*domain.Category, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategoryRow(querier.QueryRow(ctx, insertSQL, userID, name, color, ptrStringToPgText(icon)))
	if err != nil {
		return nil, postgres.MapError(err, "category", uuid.Nil)
	}

	return c, nil
}

// Update applies a partial update and returns the fresh row.
// Returns domain.ErrNotFound if the category does not exist or belongs to
// another user.
func (r *Repo) Update(ctx context.Context, userID, categoryID uuid.UUID, params domain.CategoryUpdateParams) (*domain.Category, error) {
	b := psql.Update("categories").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": categoryID, "user_id": userID}).
		Suffix("RETURNING " + categoryColumns)

	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Color != nil {
		b = b.Set("color", *params.Color)
	}
	if params.Icon != nil {
		if *params.Icon == "" {
			b = b.Set("icon", nil)
		} else {
			b = b.Set("icon", *params.Icon)
		}
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCategoryRow(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "category", categoryID)
	}

	return c, nil
}

// Delete removes a category. Bookmarks pointing at it get category_id set to
// NULL by the FK's ON DELETE SET NULL; callers clear references explicitly in
// the same transaction so the behavior does not hinge on the constraint.
// Returns domain.ErrNotFound if the category does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, categoryID, userID)
	if err != nil {
		return postgres.MapError(err, "category", categoryID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", categoryID, domain.ErrNotFound)
	}

	return nil
}

func scanCategoryRow(row pgx.Row) (*domain.Category, error) {
	return scanCategory(row)
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		c    domain.Category
		icon pgtype.Text
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if icon.Valid {
		c.Icon = &icon.String
	}
	return &c, nil
}

func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
