package service

import (
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_AuthenticateUser_NewUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	name := "Laura"
	result, err := svc.AuthenticateUser("auth0|abc123", "laura@example.com", &name, nil)

	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.Equal(t, "laura@example.com", result.User.Email)
	assert.NotEqual(t, uuid.Nil, result.User.ID)
}

func TestAuthService_AuthenticateUser_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	existing := &domain.User{ID: uuid.New(), Auth0ID: "auth0|abc123", Email: "laura@example.com"}
	userRepo.AddUser(existing)

	result, err := svc.AuthenticateUser("auth0|abc123", "laura@example.com", nil, nil)

	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	assert.Equal(t, existing.ID, result.User.ID)
}

func TestAuthService_GetUserIDByAuth0ID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(userRepo)

	existing := &domain.User{ID: uuid.New(), Auth0ID: "auth0|abc123", Email: "laura@example.com"}
	userRepo.AddUser(existing)

	id, err := svc.GetUserIDByAuth0ID("auth0|abc123")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)

	_, err = svc.GetUserIDByAuth0ID("auth0|missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
