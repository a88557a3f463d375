package service

import (
	"strings"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryService *CategoryService
	publisher       websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryService *CategoryService, publisher websocket.EventPublisher) *TransactionService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryService: categoryService,
		publisher:       publisher,
	}
}

// CreateTransactionInput holds the input for creating or updating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	Type        domain.TransactionType
	CategoryID  uuid.UUID
}

func (s *TransactionService) validateInput(userID uuid.UUID, input CreateTransactionInput) (*string, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidType
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if len(trimmed) > domain.MaxDescriptionLength {
			return nil, domain.ErrDescriptionTooLong
		}
		if trimmed != "" {
			description = &trimmed
		}
	}

	exists, err := s.categoryService.CategoryExists(userID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}

	return description, nil
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	description, err := s.validateInput(userID, input)
	if err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		UserID:      userID,
		Amount:      input.Amount,
		Description: description,
		Date:        input.Date,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.attachCategory(userID, created)
	s.publisher.Publish(userID, websocket.TransactionCreated(created))
	return created, nil
}

// UpdateTransaction replaces the mutable fields of a transaction
func (s *TransactionService) UpdateTransaction(userID, id uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	description, err := s.validateInput(userID, input)
	if err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(userID, id, &domain.UpdateTransactionData{
		Amount:      input.Amount,
		Description: description,
		Date:        input.Date,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	s.attachCategory(userID, updated)
	s.publisher.Publish(userID, websocket.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction removes one of the user's transactions
func (s *TransactionService) DeleteTransaction(userID, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.TransactionDeleted(map[string]string{"id": id.String()}))
	return nil
}

// GetTransaction returns a single transaction with its category attached
func (s *TransactionService) GetTransaction(userID, id uuid.UUID) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	s.attachCategory(userID, transaction)
	return transaction, nil
}

// GetTransactions returns all of the user's transactions, newest first,
// with category snapshots attached.
func (s *TransactionService) GetTransactions(userID uuid.UUID) ([]*domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetAllByUser(userID)
	if err != nil {
		return nil, err
	}

	index, err := s.categoryService.ResolveCategories(userID)
	if err != nil {
		return nil, err
	}
	domain.AttachCategories(transactions, index)

	return transactions, nil
}

// TransactionListResult is a filtered transaction list grouped by date label
type TransactionListResult struct {
	Groups []domain.DateGroup `json:"groups"`
	Total  int                `json:"total"`
}

// SearchTransactions applies the type filter and text search, then groups
// the matches by their date label.
func (s *TransactionService) SearchTransactions(userID uuid.UUID, filterType domain.FilterType, query string) (*TransactionListResult, error) {
	transactions, err := s.GetTransactions(userID)
	if err != nil {
		return nil, err
	}

	filtered := domain.FilterTransactions(transactions, filterType, query)
	return &TransactionListResult{
		Groups: domain.GroupByDate(filtered),
		Total:  len(filtered),
	}, nil
}

func (s *TransactionService) attachCategory(userID uuid.UUID, transaction *domain.Transaction) {
	index, err := s.categoryService.ResolveCategories(userID)
	if err != nil {
		// The transaction itself is already persisted; it just comes back
		// without its category snapshot
		log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("transaction_id", transaction.ID.String()).
			Msg("Failed to resolve categories for snapshot")
		return
	}
	domain.AttachCategories([]*domain.Transaction{transaction}, index)
}
