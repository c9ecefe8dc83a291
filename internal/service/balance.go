package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/benx421/proxy-ledger/internal/db"
	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 100
)

// ChargeInput debits an account for proxy usage
type ChargeInput struct {
	SubAccountID *int64          `json:"sub_account_id"`
	Description  string          `json:"description" validate:"max=255"`
	Amount       decimal.Decimal `json:"amount"`
}

// ChargeResult is the ledger entry written for a charge and the balance after it
type ChargeResult struct {
	Entry   *models.Transaction `json:"transaction"`
	Balance decimal.Decimal     `json:"balance"`
}

// BalanceService handles account reads and charges
type BalanceService struct {
	db     *db.DB
	logger *slog.Logger
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(database *db.DB, logger *slog.Logger) *BalanceService {
	return &BalanceService{
		db:     database,
		logger: logger,
	}
}

// GetAccount retrieves an account with its current balance
func (s *BalanceService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := repository.NewAccountRepository(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
		}
		return nil, internalError("failed to load account", err)
	}
	return account, nil
}

// ListTransactions returns the most recent ledger entries of an account
func (s *BalanceService) ListTransactions(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultTransactionLimit
	case limit > maxTransactionLimit:
		limit = maxTransactionLimit
	}

	txns, err := repository.NewTransactionRepository(s.db).ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, internalError("failed to list transactions", err)
	}
	return txns, nil
}

// Charge debits the account. Unlike refunds, the balance is not clamped at zero.
func (s *BalanceService) Charge(ctx context.Context, accountID int64, input ChargeInput) (*ChargeResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	result, err := s.performCharge(ctx, repository.NewAccountRepository(tx), repository.NewTransactionRepository(tx), accountID, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("failed to commit transaction", err)
	}

	s.logger.Info("account charged", "account_id", accountID, "amount", input.Amount.StringFixed(2), "balance", result.Balance.StringFixed(2))
	return result, nil
}

// performCharge contains the core charge business logic
func (s *BalanceService) performCharge(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	accountID int64,
	input ChargeInput,
) (*ChargeResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	amount := input.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: "amount must be greater than zero"}
	}

	account, err := accountRepo.FindByIDForUpdate(ctx, accountID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
		}
		return nil, internalError("failed to load account", err)
	}

	newBalance := account.Balance.Sub(amount)
	if err := accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, internalError("failed to update balance", err)
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Charge of %s", amount.StringFixed(2))
	}

	entry := &models.Transaction{
		AccountID:    account.ID,
		SubAccountID: input.SubAccountID,
		Type:         models.TransactionTypeCharge,
		Amount:       amount.Neg(),
		Status:       models.TransactionStatusCompleted,
		Description:  description,
	}
	if err := transactionRepo.Create(ctx, entry); err != nil {
		return nil, internalError("failed to create ledger entry", err)
	}

	return &ChargeResult{Entry: entry, Balance: newBalance}, nil
}
