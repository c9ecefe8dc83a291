package models

import "time"

// WebhookStatus is the terminal outcome recorded for a delivery
type WebhookStatus string

const (
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusFailed    WebhookStatus = "failed"
)

// WebhookRecord is written once per distinct webhook id and never updated
type WebhookRecord struct {
	ProcessedAt  time.Time     `db:"processed_at"`
	ErrorMessage *string       `db:"error_message"`
	WebhookID    string        `db:"webhook_id"`
	EventType    string        `db:"event_type"`
	Payload      string        `db:"payload"`
	Signature    string        `db:"signature"`
	Status       WebhookStatus `db:"status"`
	ID           int64         `db:"id"`
}
