package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benx421/proxy-ledger/internal/db"
	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
)

// WebhookOutcome describes what happened to a verified delivery
type WebhookOutcome string

const (
	OutcomeProcessed WebhookOutcome = "processed"
	OutcomeIgnored   WebhookOutcome = "ignored"
	OutcomeDuplicate WebhookOutcome = "duplicate"
)

const failureRecordTimeout = 5 * time.Second

// WebhookResult is returned for deliveries that were applied, ignored or already seen
type WebhookResult struct {
	Entry     *models.Transaction
	Balance   *decimal.Decimal
	WebhookID string
	EventType string
	Outcome   WebhookOutcome
}

// ledgerRepos are the repositories bound to one transaction
type ledgerRepos struct {
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
	webhooks     repository.WebhookRepository
}

// txRunner runs fn in a transaction that commits only when fn returns nil
type txRunner func(ctx context.Context, fn func(repos ledgerRepos) error) error

// WebhookService applies signed payment notifications to account balances
type WebhookService struct {
	webhooks repository.WebhookRepository
	runInTx  txRunner
	logger   *slog.Logger
	secret   string
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(database *db.DB, secret string, logger *slog.Logger) *WebhookService {
	return &WebhookService{
		webhooks: repository.NewWebhookRepository(database),
		runInTx:  readCommittedTx(database),
		secret:   secret,
		logger:   logger,
	}
}

func readCommittedTx(database *db.DB) txRunner {
	return func(ctx context.Context, fn func(repos ledgerRepos) error) error {
		tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return internalError("failed to start transaction", err)
		}
		defer func() {
			_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
		}()

		if err := fn(ledgerRepos{
			accounts:     repository.NewAccountRepository(tx),
			transactions: repository.NewTransactionRepository(tx),
			webhooks:     repository.NewWebhookRepository(tx),
		}); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return internalError("failed to commit transaction", err)
		}
		return nil
	}
}

// HandleDelivery verifies, deduplicates and applies one webhook delivery.
// A delivery whose signature does not verify leaves no trace.
func (s *WebhookService) HandleDelivery(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	if !VerifySignature(body, signature, s.secret) {
		webhookDeliveries.WithLabelValues("rejected").Inc()
		s.logger.Warn("webhook signature rejected", "body_bytes", len(body))
		return nil, &ServiceError{
			Code:    ErrCodeSignatureInvalid,
			Message: "invalid signature",
		}
	}

	event, decodeErr := decodePaymentEvent(body)
	if event == nil {
		svcErr := &ServiceError{Code: ErrCodeMalformedPayload, Message: "malformed payload", Err: decodeErr}
		s.recordFailure(ctx, synthesizeWebhookID(), eventTypeUnknown, body, signature, svcErr)
		return nil, svcErr
	}

	logger := s.logger.With("webhook_id", event.WebhookID, "event_type", event.EventType)

	seen, err := s.webhooks.Exists(ctx, event.WebhookID)
	if err != nil {
		webhookDeliveries.WithLabelValues("error").Inc()
		return nil, internalError("failed to check webhook history", err)
	}
	if seen {
		return s.duplicate(logger, event), nil
	}

	if decodeErr != nil {
		svcErr := &ServiceError{Code: ErrCodeMalformedPayload, Message: "malformed payload", Err: decodeErr}
		s.recordFailure(ctx, event.WebhookID, event.EventType, body, signature, svcErr)
		logger.Warn("malformed webhook envelope", "error", decodeErr)
		return nil, svcErr
	}

	result, err := s.apply(ctx, event, body, signature)
	if errors.Is(err, models.ErrDuplicateWebhook) {
		return s.duplicate(logger, event), nil
	}
	if err != nil {
		s.recordFailure(ctx, event.WebhookID, event.EventType, body, signature, err)
		logger.Error("webhook processing failed", "error", err)
		return nil, err
	}

	webhookDeliveries.WithLabelValues(string(result.Outcome)).Inc()
	logger.Info("webhook processed", "outcome", result.Outcome, "synthesized_id", event.Synthesized)
	return result, nil
}

func (s *WebhookService) duplicate(logger *slog.Logger, event *PaymentEvent) *WebhookResult {
	webhookDeliveries.WithLabelValues(string(OutcomeDuplicate)).Inc()
	logger.Info("webhook already processed")
	return &WebhookResult{
		WebhookID: event.WebhookID,
		EventType: event.EventType,
		Outcome:   OutcomeDuplicate,
	}
}

// apply runs the balance change, ledger entry and processed record in one transaction
func (s *WebhookService) apply(ctx context.Context, event *PaymentEvent, body []byte, signature string) (*WebhookResult, error) {
	var result *WebhookResult

	err := s.runInTx(ctx, func(repos ledgerRepos) error {
		var err error
		result, err = s.performPaymentEvent(ctx, repos.accounts, repos.transactions, event)
		if err != nil {
			return err
		}

		record := &models.WebhookRecord{
			WebhookID: event.WebhookID,
			EventType: event.EventType,
			Payload:   string(body),
			Signature: signature,
			Status:    models.WebhookStatusProcessed,
		}
		if err := repos.webhooks.Insert(ctx, record); err != nil {
			if errors.Is(err, models.ErrDuplicateWebhook) {
				return err
			}
			return internalError("failed to record webhook", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// performPaymentEvent contains the balance and ledger rules for each event type
func (s *WebhookService) performPaymentEvent(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	event *PaymentEvent,
) (*WebhookResult, error) {
	userID, err := event.UserID()
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeMalformedPayload, Message: "malformed payload", Err: err}
	}
	amount, err := event.Amount()
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeMalformedPayload, Message: "malformed payload", Err: err}
	}

	account, err := accountRepo.FindByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeUnknownAccount,
				Message: fmt.Sprintf("account not found: %d", userID),
				Err:     err,
			}
		}
		return nil, internalError("failed to load account", err)
	}

	result := &WebhookResult{
		WebhookID: event.WebhookID,
		EventType: event.EventType,
		Outcome:   OutcomeProcessed,
	}

	var entry *models.Transaction
	newBalance := account.Balance

	switch event.EventType {
	case EventPaymentCompleted:
		newBalance = account.Balance.Add(amount)
		entry = &models.Transaction{
			Type:        models.TransactionTypeDeposit,
			Amount:      amount,
			Status:      models.TransactionStatusCompleted,
			Description: "Payment received via webhook",
		}
	case EventPaymentFailed:
		entry = &models.Transaction{
			Type:        models.TransactionTypeDeposit,
			Amount:      amount,
			Status:      models.TransactionStatusFailed,
			Description: "Failed payment via webhook",
		}
		s.logger.Info("payment failed", "account_id", account.ID, "reason", event.FailureReason)
	case EventRefundProcessed:
		newBalance = decimal.Max(decimal.Zero, account.Balance.Sub(amount))
		entry = &models.Transaction{
			Type:        models.TransactionTypeRefund,
			Amount:      amount.Neg(),
			Status:      models.TransactionStatusCompleted,
			Description: "Refund processed via webhook",
		}
	default:
		s.logger.Warn("ignoring unknown webhook event type", "event_type", event.EventType)
		result.Outcome = OutcomeIgnored
		return result, nil
	}

	if !newBalance.Equal(account.Balance) {
		if err := accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
			return nil, internalError("failed to update balance", err)
		}
	}

	entry.AccountID = account.ID
	entry.ReferenceID = event.TransactionID
	if err := transactionRepo.Create(ctx, entry); err != nil {
		return nil, internalError("failed to create ledger entry", err)
	}

	result.Entry = entry
	result.Balance = &newBalance
	return result, nil
}

// recordFailure writes the failed audit record outside the rolled back transaction.
// Losing a race to a concurrent delivery with the same id is not an error.
func (s *WebhookService) recordFailure(ctx context.Context, webhookID, eventType string, body []byte, signature string, cause error) {
	webhookDeliveries.WithLabelValues(string(models.WebhookStatusFailed)).Inc()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureRecordTimeout)
	defer cancel()

	msg := cause.Error()
	record := &models.WebhookRecord{
		WebhookID:    webhookID,
		EventType:    eventType,
		Payload:      string(body),
		Signature:    signature,
		Status:       models.WebhookStatusFailed,
		ErrorMessage: &msg,
	}

	err := s.webhooks.Insert(ctx, record)
	if err != nil && !errors.Is(err, models.ErrDuplicateWebhook) {
		s.logger.Error("failed to record webhook failure", "webhook_id", webhookID, "error", err)
	}
}
