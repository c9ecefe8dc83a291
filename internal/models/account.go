package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the local customer account whose balance is fed by payment webhooks
type Account struct {
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
	Email     string          `db:"email" json:"email"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	ID        int64           `db:"id" json:"id"`
}
