package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/proxy-ledger/internal/models"
)

// WebhookRepository persists one record per processed webhook id. The unique
// index on webhook_id is what serializes concurrent deliveries of the same id.
type WebhookRepository interface {
	Exists(ctx context.Context, webhookID string) (bool, error)
	Insert(ctx context.Context, record *models.WebhookRecord) error
	FindByWebhookID(ctx context.Context, webhookID string) (*models.WebhookRecord, error)
}

type webhookRepository struct {
	db DBTX
}

// NewWebhookRepository creates a new WebhookRepository
func NewWebhookRepository(database DBTX) WebhookRepository {
	return &webhookRepository{db: database}
}

// Exists reports whether any record, processed or failed, exists for the id
func (r *webhookRepository) Exists(ctx context.Context, webhookID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM payment_webhooks WHERE webhook_id = $1)`,
		webhookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check webhook: %w", err)
	}
	return exists, nil
}

// Insert writes the record. If another delivery already holds the id it returns
// models.ErrDuplicateWebhook; inside a transaction the insert blocks until the
// competing transaction commits or rolls back.
func (r *webhookRepository) Insert(ctx context.Context, record *models.WebhookRecord) error {
	query := `
		INSERT INTO payment_webhooks (webhook_id, event_type, payload, signature, status, error_message, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (webhook_id) DO NOTHING
		RETURNING id, processed_at
	`

	err := r.db.QueryRowContext(ctx, query,
		record.WebhookID,
		record.EventType,
		record.Payload,
		record.Signature,
		record.Status,
		record.ErrorMessage,
	).Scan(&record.ID, &record.ProcessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("webhook %s: %w", record.WebhookID, models.ErrDuplicateWebhook)
	}
	if err != nil {
		return fmt.Errorf("failed to insert webhook record: %w", err)
	}

	return nil
}

// FindByWebhookID retrieves the record for a webhook id
func (r *webhookRepository) FindByWebhookID(ctx context.Context, webhookID string) (*models.WebhookRecord, error) {
	query := `
		SELECT id, webhook_id, event_type, payload, signature, status, error_message, processed_at
		FROM payment_webhooks
		WHERE webhook_id = $1
	`

	var rec models.WebhookRecord
	err := r.db.QueryRowContext(ctx, query, webhookID).Scan(
		&rec.ID,
		&rec.WebhookID,
		&rec.EventType,
		&rec.Payload,
		&rec.Signature,
		&rec.Status,
		&rec.ErrorMessage,
		&rec.ProcessedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("webhook %s: %w", webhookID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find webhook record: %w", err)
	}

	return &rec, nil
}
