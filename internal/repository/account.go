package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, email string, balance decimal.Decimal) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
}

// accountRepository implements AccountRepository
type accountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(database DBTX) AccountRepository {
	return &accountRepository{db: database}
}

// Create inserts a new account with an opening balance
func (r *accountRepository) Create(ctx context.Context, email string, balance decimal.Decimal) (*models.Account, error) {
	query := `
		INSERT INTO accounts (email, balance)
		VALUES ($1, $2)
		RETURNING id, email, balance, created_at, updated_at
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, email, balance))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("account %s: %w", email, models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// FindByID retrieves an account by id
func (r *accountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, email, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate retrieves an account and locks its row until the transaction ends
func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, email, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	return r.findOne(ctx, query, id)
}

func (r *accountRepository) findOne(ctx context.Context, query string, id int64) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}

	return account, nil
}

// UpdateBalance overwrites the stored balance. Callers compute the new value
// under a row lock taken with FindByIDForUpdate.
func (r *accountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %d: %w", id, models.ErrNotFound)
	}

	return nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
