package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, amount, description, date, type, category_id, created_at, updated_at`

// Create inserts a new transaction and returns it with generated fields set.
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, amount, description, date, type, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+transactionColumns,
		transaction.UserID, transaction.Amount, transaction.Description,
		transaction.Date, string(transaction.Type), transaction.CategoryID,
	)
	return scanTransaction(row)
}

// GetByID retrieves one of the user's transactions.
func (r *TransactionRepository) GetByID(userID, id uuid.UUID) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetAllByUser returns the user's transactions newest first. Ties on the
// same date fall back to creation time so same-day rows keep a stable order.
func (r *TransactionRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Update replaces the mutable fields of one of the user's transactions.
func (r *TransactionRepository) Update(userID, id uuid.UUID, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`UPDATE transactions
		 SET amount = $1, description = $2, date = $3, type = $4, category_id = $5, updated_at = now()
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+transactionColumns,
		data.Amount, data.Description, data.Date, string(data.Type), data.CategoryID,
		id, userID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete removes one of the user's transactions.
func (r *TransactionRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var txType string
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &t.Date,
		&txType, &t.CategoryID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(txType)
	return t, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
