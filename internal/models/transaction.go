package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger entry
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
	TransactionTypeCharge  TransactionType = "charge"
	TransactionTypeRefund  TransactionType = "refund"
)

// TransactionStatus represents the status of a ledger entry
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry for account activity.
// Amount is signed: refunds and charges are stored negated.
type Transaction struct {
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	ReferenceID  *string           `db:"reference_id" json:"reference_id,omitempty"`
	SubAccountID *int64            `db:"sub_account_id" json:"sub_account_id,omitempty"`
	Description  string            `db:"description" json:"description"`
	Type         TransactionType   `db:"type" json:"type"`
	Status       TransactionStatus `db:"status" json:"status"`
	Amount       decimal.Decimal   `db:"amount" json:"amount"`
	ID           int64             `db:"id" json:"id"`
	AccountID    int64             `db:"account_id" json:"account_id"`
}

// IdempotencyKey tracks processed requests to prevent duplicate mutations
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}
