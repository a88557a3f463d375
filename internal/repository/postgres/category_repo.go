package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for foreign_key_violation.
const pgForeignKeyViolation = "23503"

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, name, icon, color, type, created_at, updated_at`

// Create inserts a new user category.
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO categories (user_id, name, icon, color, type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+categoryColumns,
		category.UserID, category.Name, category.Icon, category.Color, string(category.Type),
	)
	return scanCategory(row)
}

// GetByID retrieves one of the user's categories.
func (r *CategoryRepository) GetByID(userID, id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+`
		 FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetAllByUser returns the user's categories, income categories first,
// alphabetical within each type.
func (r *CategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+`
		 FROM categories WHERE user_id = $1
		 ORDER BY type DESC, name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes one of the user's categories. A foreign key violation means
// transactions still reference it and surfaces as domain.ErrCategoryInUse.
func (r *CategoryRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrCategoryInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// HasTransactions reports whether any transaction references the category.
func (r *CategoryRepository) HasTransactions(userID, id uuid.UUID) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM transactions WHERE user_id = $1 AND category_id = $2
		 )`,
		userID, id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	c := &domain.Category{}
	var catType string
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &catType,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = domain.TransactionType(catType)
	return c, nil
}
