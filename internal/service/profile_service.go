package service

import (
	"context"
	"strings"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// avatarURLExpiry is how long presigned avatar links stay valid.
const avatarURLExpiry = 24 * time.Hour

// ProfileService handles profile-related business logic
type ProfileService struct {
	userRepo     domain.UserRepository
	imageService *ImageService
	publisher    websocket.EventPublisher
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository, imageService *ImageService, publisher websocket.EventPublisher) *ProfileService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ProfileService{
		userRepo:     userRepo,
		imageService: imageService,
		publisher:    publisher,
	}
}

// GetProfile retrieves a user's profile by Auth0 ID
func (s *ProfileService) GetProfile(auth0ID string) (*domain.User, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return nil, err
	}
	s.resolveAvatarURL(user)
	return user, nil
}

// UpdateProfile updates a user's display name by Auth0 ID
func (s *ProfileService) UpdateProfile(auth0ID string, name string) (*domain.User, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, domain.ErrNameRequired
	}
	if len(trimmed) > domain.MaxProfileNameLength {
		return nil, domain.ErrNameTooLong
	}

	user, err := s.userRepo.UpdateName(auth0ID, trimmed)
	if err != nil {
		return nil, err
	}
	s.resolveAvatarURL(user)
	s.publisher.Publish(user.ID, websocket.ProfileUpdated(user))
	return user, nil
}

// UploadAvatar processes and stores a new avatar image, replacing the stored
// object path on the user row.
func (s *ProfileService) UploadAvatar(ctx context.Context, auth0ID string, data []byte, filename string) (*domain.User, error) {
	if !s.imageService.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return nil, err
	}

	meta, err := s.imageService.ProcessAndUpload(ctx, user.ID, data, filename)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateAvatar(auth0ID, meta.ThumbnailPath)
	if err != nil {
		return nil, err
	}
	s.resolveAvatarURL(updated)
	s.publisher.Publish(updated.ID, websocket.ProfileUpdated(updated))
	return updated, nil
}

// resolveAvatarURL swaps a stored object path for a presigned URL. Auth0
// picture URLs (already absolute) pass through untouched.
func (s *ProfileService) resolveAvatarURL(user *domain.User) {
	if user.AvatarURL == nil || strings.HasPrefix(*user.AvatarURL, "http") {
		return
	}
	if !s.imageService.IsEnabled() {
		return
	}
	url, err := s.imageService.PresignedURL(context.Background(), *user.AvatarURL, avatarURLExpiry)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("Failed to presign avatar URL")
		return
	}
	user.AvatarURL = &url
}
