package repository

import (
	"context"
	"fmt"

	"github.com/benx421/proxy-ledger/internal/models"
)

// TransactionRepository defines the interface for ledger entry data access.
// Entries are append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error)
}

type transactionRepository struct {
	db DBTX
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(database DBTX) TransactionRepository {
	return &transactionRepository{db: database}
}

// Create inserts a ledger entry and fills in its id and creation time
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, sub_account_id, type, amount, description, reference_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		txn.AccountID,
		txn.SubAccountID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.ReferenceID,
		txn.Status,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// ListByAccount returns the most recent ledger entries for an account
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, sub_account_id, type, amount, description, reference_id, status, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]models.Transaction, 0, limit)
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txn.SubAccountID,
			&txn.Type,
			&txn.Amount,
			&txn.Description,
			&txn.ReferenceID,
			&txn.Status,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}
