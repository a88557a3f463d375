package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// CategorySnapshot is the denormalized category data attached to a
// transaction by the fetch layer. It is never stored on the transaction row.
type CategorySnapshot struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Transaction is a single dated money movement. Amount is always positive;
// direction is carried by Type.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	Amount      decimal.Decimal   `json:"amount"`
	Description *string           `json:"description,omitempty"`
	Date        time.Time         `json:"date"`
	Type        TransactionType   `json:"type"`
	CategoryID  uuid.UUID         `json:"categoryId"`
	Category    *CategorySnapshot `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// UpdateTransactionData carries the mutable fields of a transaction update.
type UpdateTransactionData struct {
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	Type        TransactionType
	CategoryID  uuid.UUID
}

// TransactionRepository defines persistence operations for transactions.
// GetAllByUser returns rows ordered by date descending (newest first),
// ties broken by created_at descending; the grouping and weekly bucketing
// logic relies on that order.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID, id uuid.UUID) (*Transaction, error)
	GetAllByUser(userID uuid.UUID) ([]*Transaction, error)
	Update(userID, id uuid.UUID, data *UpdateTransactionData) (*Transaction, error)
	Delete(userID, id uuid.UUID) error
}
