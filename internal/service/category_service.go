package service

import (
	"errors"
	"strings"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/google/uuid"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo       domain.CategoryRepository
	globalCategoryRepo domain.GlobalCategoryRepository
	publisher          websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, globalCategoryRepo domain.GlobalCategoryRepository, publisher websocket.EventPublisher) *CategoryService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &CategoryService{
		categoryRepo:       categoryRepo,
		globalCategoryRepo: globalCategoryRepo,
		publisher:          publisher,
	}
}

// CreateCategoryInput holds the input for creating a category
type CreateCategoryInput struct {
	Name  string
	Icon  string
	Color string
	Type  domain.TransactionType
}

// CreateCategory creates a new user category with validation. Icon and color
// must come from the closed sets offered by the category form.
func (s *CategoryService) CreateCategory(userID uuid.UUID, input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidType
	}
	if !domain.ValidIcon(input.Icon) {
		return nil, domain.ErrInvalidIcon
	}
	if !domain.ValidColor(input.Color) {
		return nil, domain.ErrInvalidColor
	}

	category := &domain.Category{
		UserID: userID,
		Name:   name,
		Icon:   input.Icon,
		Color:  input.Color,
		Type:   input.Type,
	}

	created, err := s.categoryRepo.Create(category)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.CategoryCreated(created))
	return created, nil
}

// GetCategories returns the user's own categories, income first
func (s *CategoryService) GetCategories(userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByUser(userID)
}

// GetGlobalCategories returns the shared categories available to everyone
func (s *CategoryService) GetGlobalCategories() ([]*domain.GlobalCategory, error) {
	return s.globalCategoryRepo.GetAll()
}

// DeleteCategory removes one of the user's categories. Deleting a category
// that still has transactions fails with domain.ErrCategoryInUse; the check
// runs up front, with the repository's foreign key mapping as the backstop
// for concurrent inserts.
func (s *CategoryService) DeleteCategory(userID, id uuid.UUID) error {
	inUse, err := s.categoryRepo.HasTransactions(userID, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.CategoryDeleted(map[string]string{"id": id.String()}))
	return nil
}

// ResolveCategories builds the snapshot index used to decorate transactions.
// Global categories load first so a user category with the same ID wins.
func (s *CategoryService) ResolveCategories(userID uuid.UUID) (map[uuid.UUID]domain.CategorySnapshot, error) {
	globals, err := s.globalCategoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	userCats, err := s.categoryRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}
	return domain.BuildCategoryIndex(globals, userCats), nil
}

// CategoryExists reports whether the ID refers to one of the user's
// categories or a global category. Only a definitive not-found from both
// repositories counts as absence; anything else is an infrastructure
// failure and propagates.
func (s *CategoryService) CategoryExists(userID, id uuid.UUID) (bool, error) {
	_, err := s.categoryRepo.GetByID(userID, id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return false, err
	}

	_, err = s.globalCategoryRepo.GetByID(id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return false, err
	}
	return false, nil
}
