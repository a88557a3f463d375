package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, avatarURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, avatarURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, avatarURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// UpdateName updates only the user's name by Auth0 ID
func (m *MockUserRepository) UpdateName(auth0ID string, name string) (*domain.User, error) {
	user, ok := m.Users[auth0ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = &name
	return user, nil
}

// UpdateAvatar updates only the user's avatar URL by Auth0 ID
func (m *MockUserRepository) UpdateAvatar(auth0ID string, avatarURL string) (*domain.User, error) {
	user, ok := m.Users[auth0ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.AvatarURL = &avatarURL
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	ByUser       map[uuid.UUID][]*domain.Transaction
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	GetAllFn     func(userID uuid.UUID) ([]*domain.Transaction, error)
	UpdateFn     func(userID, id uuid.UUID, data *domain.UpdateTransactionData) (*domain.Transaction, error)
	DeleteFn     func(userID, id uuid.UUID) error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
		ByUser:       make(map[uuid.UUID][]*domain.Transaction),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
	return transaction, nil
}

// GetByID retrieves one of the user's transactions
func (m *MockTransactionRepository) GetByID(userID, id uuid.UUID) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// GetAllByUser retrieves the user's transactions sorted date descending,
// ties broken by creation time descending, matching the real repository.
func (m *MockTransactionRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(userID)
	}
	transactions := make([]*domain.Transaction, len(m.ByUser[userID]))
	copy(transactions, m.ByUser[userID])
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

// Update updates one of the user's transactions
func (m *MockTransactionRepository) Update(userID, id uuid.UUID, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, data)
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.Amount = data.Amount
	transaction.Description = data.Description
	transaction.Date = data.Date
	transaction.Type = data.Type
	transaction.CategoryID = data.CategoryID
	transaction.UpdatedAt = time.Now()
	return transaction, nil
}

// Delete removes one of the user's transactions
func (m *MockTransactionRepository) Delete(userID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	byUser := m.ByUser[userID]
	for i, t := range byUser {
		if t.ID == id {
			m.ByUser[userID] = append(byUser[:i], byUser[i+1:]...)
			break
		}
	}
	return nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
	ByUser     map[uuid.UUID][]*domain.Category
	// InUse marks category IDs whose delete fails with ErrCategoryInUse,
	// mirroring the foreign key constraint in the real repository.
	InUse             map[uuid.UUID]bool
	CreateFn          func(category *domain.Category) (*domain.Category, error)
	GetFn             func(userID, id uuid.UUID) (*domain.Category, error)
	DeleteFn          func(userID, id uuid.UUID) error
	HasTransactionsFn func(userID, id uuid.UUID) (bool, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.Category),
		ByUser:     make(map[uuid.UUID][]*domain.Category),
		InUse:      make(map[uuid.UUID]bool),
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	m.ByUser[category.UserID] = append(m.ByUser[category.UserID], category)
	return category, nil
}

// GetByID retrieves one of the user's categories
func (m *MockCategoryRepository) GetByID(userID, id uuid.UUID) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(userID, id)
	}
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetAllByUser retrieves the user's categories, income first then by name,
// matching the real repository's ordering.
func (m *MockCategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	categories := make([]*domain.Category, len(m.ByUser[userID]))
	copy(categories, m.ByUser[userID])
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Type != categories[j].Type {
			return categories[i].Type > categories[j].Type
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Delete removes one of the user's categories
func (m *MockCategoryRepository) Delete(userID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	if m.InUse[id] {
		return domain.ErrCategoryInUse
	}
	delete(m.Categories, id)
	byUser := m.ByUser[userID]
	for i, c := range byUser {
		if c.ID == id {
			m.ByUser[userID] = append(byUser[:i], byUser[i+1:]...)
			break
		}
	}
	return nil
}

// HasTransactions reports whether the category is marked as referenced
func (m *MockCategoryRepository) HasTransactions(userID, id uuid.UUID) (bool, error) {
	if m.HasTransactionsFn != nil {
		return m.HasTransactionsFn(userID, id)
	}
	return m.InUse[id], nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.Categories[category.ID] = category
	m.ByUser[category.UserID] = append(m.ByUser[category.UserID], category)
}

// MockGlobalCategoryRepository is a mock implementation of domain.GlobalCategoryRepository
type MockGlobalCategoryRepository struct {
	Categories map[uuid.UUID]*domain.GlobalCategory
	order      []uuid.UUID
	GetAllFn   func() ([]*domain.GlobalCategory, error)
}

// NewMockGlobalCategoryRepository creates a new MockGlobalCategoryRepository
func NewMockGlobalCategoryRepository() *MockGlobalCategoryRepository {
	return &MockGlobalCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.GlobalCategory),
	}
}

// GetAll retrieves all global categories in insertion order
func (m *MockGlobalCategoryRepository) GetAll() ([]*domain.GlobalCategory, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	categories := make([]*domain.GlobalCategory, 0, len(m.order))
	for _, id := range m.order {
		categories = append(categories, m.Categories[id])
	}
	return categories, nil
}

// GetByID retrieves a global category by ID
func (m *MockGlobalCategoryRepository) GetByID(id uuid.UUID) (*domain.GlobalCategory, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// AddCategory adds a global category to the mock repository (helper for tests)
func (m *MockGlobalCategoryRepository) AddCategory(category *domain.GlobalCategory) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.Categories[category.ID] = category
	m.order = append(m.order, category.ID)
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent pairs an event with the user it was published to
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// EventTypes returns the types of all published events in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

// MockImageRepository is an in-memory implementation of storage.ImageRepository
type MockImageRepository struct {
	Objects  map[string][]byte
	UploadFn func(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
}

// NewMockImageRepository creates a new MockImageRepository
func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockImageRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, objectPath, data, contentType, size)
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf
	return objectPath, nil
}

// Delete removes the object from memory
func (m *MockImageRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake URL for the object
func (m *MockImageRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s", objectPath), nil
}
