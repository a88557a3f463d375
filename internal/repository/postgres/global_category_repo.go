package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GlobalCategoryRepository implements domain.GlobalCategoryRepository using PostgreSQL
type GlobalCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewGlobalCategoryRepository creates a new GlobalCategoryRepository
func NewGlobalCategoryRepository(pool *pgxpool.Pool) *GlobalCategoryRepository {
	return &GlobalCategoryRepository{pool: pool}
}

// GetAll returns every shared category, income first, alphabetical within type.
func (r *GlobalCategoryRepository) GetAll() ([]*domain.GlobalCategory, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, icon, color, type, created_at
		 FROM global_categories
		 ORDER BY type DESC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.GlobalCategory, 0)
	for rows.Next() {
		c, err := scanGlobalCategory(rows)
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

// GetByID retrieves a single shared category.
func (r *GlobalCategoryRepository) GetByID(id uuid.UUID) (*domain.GlobalCategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT id, name, icon, color, type, created_at
		 FROM global_categories WHERE id = $1`,
		id,
	)
	c, err := scanGlobalCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanGlobalCategory(row pgx.Row) (*domain.GlobalCategory, error) {
	c := &domain.GlobalCategory{}
	var catType string
	err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &catType, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = domain.TransactionType(catType)
	return c, nil
}
