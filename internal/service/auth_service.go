package service

import (
	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	IsNewUser bool
}

// AuthenticateUser handles the authentication flow after the Auth0 callback.
// Creates the user row on first login.
func (s *AuthService) AuthenticateUser(auth0ID, email string, name, avatarURL *string) (*AuthResult, error) {
	_, err := s.userRepo.GetByAuth0ID(auth0ID)
	isNew := err != nil

	user, err := s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, name, avatarURL)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	if isNew {
		log.Info().Str("user_id", user.ID.String()).Msg("Created new user")
	} else {
		log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
	}

	return &AuthResult{User: user, IsNewUser: isNew}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(auth0ID)
}

// GetUserIDByAuth0ID resolves an Auth0 subject to the internal user ID.
// Satisfies both the auth middleware's and the websocket validator's
// lookup interfaces.
func (s *AuthService) GetUserIDByAuth0ID(auth0ID string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}
