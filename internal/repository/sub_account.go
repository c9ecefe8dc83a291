package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/lib/pq"
)

// SubAccountFilter narrows a local sub-account listing
type SubAccountFilter struct {
	Search    string
	Status    models.SubAccountStatus
	AccountID int64
	Limit     int
}

// SubAccountRepository defines the interface for sub-account data access
type SubAccountRepository interface {
	Create(ctx context.Context, sub *models.SubAccount) error
	FindByID(ctx context.Context, id int64) (*models.SubAccount, error)
	List(ctx context.Context, filter SubAccountFilter) ([]models.SubAccount, error)
	Update(ctx context.Context, sub *models.SubAccount) error
	SoftDelete(ctx context.Context, id int64) error
	MarkSynced(ctx context.Context, id, resellerID int64) error
	MarkPending(ctx context.Context, id int64, lastError string) error
	MarkRemoteDeleted(ctx context.Context, id int64) error
	ListPendingSync(ctx context.Context, limit int) ([]models.SubAccount, error)
}

type subAccountRepository struct {
	db DBTX
}

// NewSubAccountRepository creates a new SubAccountRepository
func NewSubAccountRepository(database DBTX) SubAccountRepository {
	return &subAccountRepository{db: database}
}

const subAccountColumns = `
	id, account_id, username, email, password_hash, balance, status, threads,
	allowed_ips, reseller_id, sync_error, synced_at, created_at, updated_at, deleted_at
`

// Create inserts a local sub-account. Remote sync state starts empty.
func (r *subAccountRepository) Create(ctx context.Context, sub *models.SubAccount) error {
	query := `
		INSERT INTO sub_accounts (account_id, username, email, password_hash, balance, status, threads, allowed_ips)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		sub.AccountID,
		sub.Username,
		sub.Email,
		sub.PasswordHash,
		sub.Balance,
		sub.Status,
		sub.Threads,
		pq.Array(nonNilIPs(sub.AllowedIPs)),
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sub-account %s: %w", sub.Username, models.ErrConflict)
		}
		return fmt.Errorf("failed to create sub-account: %w", err)
	}

	return nil
}

// FindByID retrieves a sub-account that has not been deleted
func (r *subAccountRepository) FindByID(ctx context.Context, id int64) (*models.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE id = $1 AND deleted_at IS NULL`

	sub, err := scanSubAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sub-account %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sub-account: %w", err)
	}

	return sub, nil
}

// List returns live sub-accounts matching the filter, newest first
func (r *subAccountRepository) List(ctx context.Context, filter SubAccountFilter) ([]models.SubAccount, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.AccountID > 0 {
		args = append(args, filter.AccountID)
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(username ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	args = append(args, limit)

	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE ` +
		strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	return r.query(ctx, query, args...)
}

// Update writes the locally editable fields
func (r *subAccountRepository) Update(ctx context.Context, sub *models.SubAccount) error {
	query := `
		UPDATE sub_accounts
		SET username = $2,
		    email = $3,
		    password_hash = $4,
		    status = $5,
		    threads = $6,
		    allowed_ips = $7,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		sub.ID,
		sub.Username,
		sub.Email,
		sub.PasswordHash,
		sub.Status,
		sub.Threads,
		pq.Array(nonNilIPs(sub.AllowedIPs)),
	).Scan(&sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sub-account %d: %w", sub.ID, models.ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sub-account %s: %w", sub.Username, models.ErrConflict)
		}
		return fmt.Errorf("failed to update sub-account: %w", err)
	}

	return nil
}

// SoftDelete hides the sub-account from every read path
func (r *subAccountRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE sub_accounts SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	return r.execOne(ctx, id, query, id)
}

// MarkSynced records the reseller id and clears any previous sync error
func (r *subAccountRepository) MarkSynced(ctx context.Context, id, resellerID int64) error {
	query := `
		UPDATE sub_accounts
		SET reseller_id = $2, sync_error = NULL, synced_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, id, query, id, resellerID)
}

// MarkPending records why the last sync attempt failed. The reseller id, if any, is kept.
func (r *subAccountRepository) MarkPending(ctx context.Context, id int64, lastError string) error {
	query := `UPDATE sub_accounts SET sync_error = $2, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, id, query, id, lastError)
}

// MarkRemoteDeleted unlinks a deleted sub-account once its reseller sub-user is gone
func (r *subAccountRepository) MarkRemoteDeleted(ctx context.Context, id int64) error {
	query := `
		UPDATE sub_accounts
		SET reseller_id = NULL, sync_error = NULL, synced_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`
	return r.execOne(ctx, id, query, id)
}

// ListPendingSync returns sub-accounts the retry job still has work for, oldest first:
// live ones not created remotely or whose last update failed, and deleted ones
// whose remote delete failed
func (r *subAccountRepository) ListPendingSync(ctx context.Context, limit int) ([]models.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + `
		FROM sub_accounts
		WHERE (deleted_at IS NULL AND (reseller_id IS NULL OR sync_error IS NOT NULL))
		   OR (deleted_at IS NOT NULL AND reseller_id IS NOT NULL AND sync_error IS NOT NULL)
		ORDER BY updated_at ASC, id ASC
		LIMIT $1`

	return r.query(ctx, query, limit)
}

func (r *subAccountRepository) query(ctx context.Context, query string, args ...any) ([]models.SubAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-accounts: %w", err)
	}
	defer rows.Close()

	subs := []models.SubAccount{}
	for rows.Next() {
		sub, err := scanSubAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-account: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-accounts: %w", err)
	}

	return subs, nil
}

func (r *subAccountRepository) execOne(ctx context.Context, id int64, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update sub-account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sub-account %d: %w", id, models.ErrNotFound)
	}

	return nil
}

func scanSubAccount(row rowScanner) (*models.SubAccount, error) {
	var sub models.SubAccount
	var ips pq.StringArray
	err := row.Scan(
		&sub.ID,
		&sub.AccountID,
		&sub.Username,
		&sub.Email,
		&sub.PasswordHash,
		&sub.Balance,
		&sub.Status,
		&sub.Threads,
		&ips,
		&sub.ResellerID,
		&sub.SyncError,
		&sub.SyncedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&sub.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.AllowedIPs = nonNilIPs(ips)
	return &sub, nil
}

func nonNilIPs(ips []string) []string {
	if ips == nil {
		return []string{}
	}
	return ips
}
