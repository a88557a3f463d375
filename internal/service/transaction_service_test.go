package service

import (
	"errors"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionFixture struct {
	svc             *TransactionService
	transactionRepo *testutil.MockTransactionRepository
	categoryRepo    *testutil.MockCategoryRepository
	globalRepo      *testutil.MockGlobalCategoryRepository
	publisher       *testutil.MockEventPublisher
	userID          uuid.UUID
	categoryID      uuid.UUID
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()

	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	globalRepo := testutil.NewMockGlobalCategoryRepository()
	publisher := testutil.NewMockEventPublisher()

	categoryService := NewCategoryService(categoryRepo, globalRepo, publisher)
	svc := NewTransactionService(transactionRepo, categoryService, publisher)

	userID := uuid.New()
	category := &domain.Category{UserID: userID, Name: "Comida", Icon: "hamburger", Color: "#ef4444", Type: domain.TransactionTypeExpense}
	categoryRepo.AddCategory(category)

	return &transactionFixture{
		svc:             svc,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		globalRepo:      globalRepo,
		publisher:       publisher,
		userID:          userID,
		categoryID:      category.ID,
	}
}

func (f *transactionFixture) validInput() CreateTransactionInput {
	desc := "Almuerzo"
	return CreateTransactionInput{
		Amount:      decimal.NewFromInt(25000),
		Description: &desc,
		Date:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Type:        domain.TransactionTypeExpense,
		CategoryID:  f.categoryID,
	}
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.svc.CreateTransaction(f.userID, f.validInput())

	require.NoError(t, err)
	assert.Equal(t, f.userID, created.UserID)
	assert.Equal(t, "25000", created.Amount.String())
	require.NotNil(t, created.Category)
	assert.Equal(t, "Comida", created.Category.Name)
	assert.Equal(t, []string{"transaction.created"}, f.publisher.EventTypes())
}

func TestTransactionService_CreateTransaction_Validation(t *testing.T) {
	f := newTransactionFixture(t)

	tests := []struct {
		name    string
		mutate  func(in *CreateTransactionInput)
		wantErr error
	}{
		{"zero amount", func(in *CreateTransactionInput) { in.Amount = decimal.Zero }, domain.ErrInvalidAmount},
		{"negative amount", func(in *CreateTransactionInput) { in.Amount = decimal.NewFromInt(-10) }, domain.ErrInvalidAmount},
		{"bad type", func(in *CreateTransactionInput) { in.Type = "transfer" }, domain.ErrInvalidType},
		{"unknown category", func(in *CreateTransactionInput) { in.CategoryID = uuid.New() }, domain.ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.validInput()
			tt.mutate(&input)
			_, err := f.svc.CreateTransaction(f.userID, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.publisher.EventTypes(), "no events on rejected input")
}

func TestTransactionService_CreateTransaction_GlobalCategory(t *testing.T) {
	f := newTransactionFixture(t)

	global := &domain.GlobalCategory{Name: "Salario", Icon: "money", Color: "#10b981", Type: domain.TransactionTypeIncome}
	f.globalRepo.AddCategory(global)

	input := f.validInput()
	input.Type = domain.TransactionTypeIncome
	input.CategoryID = global.ID

	created, err := f.svc.CreateTransaction(f.userID, input)

	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Salario", created.Category.Name)
}

func TestTransactionService_UpdateTransaction(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.svc.CreateTransaction(f.userID, f.validInput())
	require.NoError(t, err)

	input := f.validInput()
	input.Amount = decimal.NewFromInt(48000)
	updated, err := f.svc.UpdateTransaction(f.userID, created.ID, input)

	require.NoError(t, err)
	assert.Equal(t, "48000", updated.Amount.String())
	assert.Equal(t, []string{"transaction.created", "transaction.updated"}, f.publisher.EventTypes())
}

func TestTransactionService_UpdateTransaction_NotFound(t *testing.T) {
	f := newTransactionFixture(t)

	_, err := f.svc.UpdateTransaction(f.userID, uuid.New(), f.validInput())
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionService_DeleteTransaction(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.svc.CreateTransaction(f.userID, f.validInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTransaction(f.userID, created.ID))
	assert.Equal(t, []string{"transaction.created", "transaction.deleted"}, f.publisher.EventTypes())

	_, err = f.svc.GetTransaction(f.userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransactionService_GetTransactions_AttachesCategories(t *testing.T) {
	f := newTransactionFixture(t)

	_, err := f.svc.CreateTransaction(f.userID, f.validInput())
	require.NoError(t, err)

	// A row whose category no longer resolves keeps a nil snapshot
	f.transactionRepo.AddTransaction(&domain.Transaction{
		UserID:     f.userID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Type:       domain.TransactionTypeExpense,
		CategoryID: uuid.New(),
	})

	transactions, err := f.svc.GetTransactions(f.userID)

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.NotNil(t, transactions[0].Category)
	assert.Nil(t, transactions[1].Category)
}

func TestTransactionService_SearchTransactions(t *testing.T) {
	f := newTransactionFixture(t)

	day1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	mk := func(desc string, amount int64, date time.Time, txType domain.TransactionType) {
		input := CreateTransactionInput{
			Amount:      decimal.NewFromInt(amount),
			Description: &desc,
			Date:        date,
			Type:        txType,
			CategoryID:  f.categoryID,
		}
		_, err := f.svc.CreateTransaction(f.userID, input)
		require.NoError(t, err)
	}

	mk("Supermercado grande", 80000, day1, domain.TransactionTypeExpense)
	mk("Gasolina", 60000, day1, domain.TransactionTypeExpense)
	mk("Supermercado pequeño", 30000, day2, domain.TransactionTypeExpense)

	result, err := f.svc.SearchTransactions(f.userID, domain.FilterAll, "supermercado")

	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Groups, 2)
	// Newest day first
	assert.Equal(t, "martes, 5 de marzo de 2024", result.Groups[0].Label)
	assert.Equal(t, "lunes, 4 de marzo de 2024", result.Groups[1].Label)
}

func TestTransactionService_SearchTransactions_TypeFilter(t *testing.T) {
	f := newTransactionFixture(t)

	global := &domain.GlobalCategory{Name: "Salario", Icon: "money", Color: "#10b981", Type: domain.TransactionTypeIncome}
	f.globalRepo.AddCategory(global)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	desc := "Pago"
	_, err := f.svc.CreateTransaction(f.userID, CreateTransactionInput{
		Amount: decimal.NewFromInt(1000000), Description: &desc, Date: day,
		Type: domain.TransactionTypeIncome, CategoryID: global.ID,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateTransaction(f.userID, f.validInput())
	require.NoError(t, err)

	result, err := f.svc.SearchTransactions(f.userID, domain.FilterIncome, "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestTransactionService_CreateTransaction_CategoryLookupFailure(t *testing.T) {
	f := newTransactionFixture(t)

	repoErr := errors.New("connection refused")
	f.categoryRepo.GetFn = func(userID, id uuid.UUID) (*domain.Category, error) {
		return nil, repoErr
	}

	_, err := f.svc.CreateTransaction(f.userID, f.validInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr, "a repository outage is not a missing category")
	assert.NotErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.Empty(t, f.publisher.EventTypes())
}

func TestTransactionService_CreateTransaction_SnapshotDegraded(t *testing.T) {
	f := newTransactionFixture(t)

	// Category validation passes, but the snapshot index cannot be built;
	// the transaction still comes back, just without its category
	f.globalRepo.GetAllFn = func() ([]*domain.GlobalCategory, error) {
		return nil, errors.New("connection refused")
	}

	created, err := f.svc.CreateTransaction(f.userID, f.validInput())

	require.NoError(t, err)
	assert.Nil(t, created.Category)
	assert.Equal(t, []string{"transaction.created"}, f.publisher.EventTypes())
}
