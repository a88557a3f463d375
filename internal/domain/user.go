package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account. All transactions and personal
// categories are scoped to a user's ID.
type User struct {
	ID        uuid.UUID `json:"id"`
	Auth0ID   string    `json:"auth0Id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	CreateOrGetByAuth0ID(auth0ID, email string, name, avatarURL *string) (*User, error)
	UpdateName(auth0ID string, name string) (*User, error)
	UpdateAvatar(auth0ID string, avatarURL string) (*User, error)
}
