package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, auth0_id, email, name, avatar_url, created_at, updated_at`

// GetByID retrieves a user by internal ID.
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// GetByAuth0ID retrieves a user by the Auth0 subject claim.
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE auth0_id = $1`,
		auth0ID,
	)
	return scanUser(row)
}

// CreateOrGetByAuth0ID inserts a user on first login or returns the existing
// row. On conflict the email is refreshed from the token since Auth0 owns it.
func (r *UserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, avatarURL *string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (auth0_id, email, name, avatar_url)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (auth0_id) DO UPDATE SET email = EXCLUDED.email, updated_at = now()
		 RETURNING `+userColumns,
		auth0ID, email, name, avatarURL,
	)
	return scanUser(row)
}

// UpdateName sets the user's display name.
func (r *UserRepository) UpdateName(auth0ID string, name string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`UPDATE users SET name = $1, updated_at = now()
		 WHERE auth0_id = $2
		 RETURNING `+userColumns,
		name, auth0ID,
	)
	return scanUser(row)
}

// UpdateAvatar sets the user's avatar URL.
func (r *UserRepository) UpdateAvatar(auth0ID string, avatarURL string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`UPDATE users SET avatar_url = $1, updated_at = now()
		 WHERE auth0_id = $2
		 RETURNING `+userColumns,
		avatarURL, auth0ID,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Auth0ID, &u.Email, &u.Name, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
