package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubAccountStatus is the local lifecycle state of a sub-account
type SubAccountStatus string

const (
	SubAccountStatusActive    SubAccountStatus = "active"
	SubAccountStatusInactive  SubAccountStatus = "inactive"
	SubAccountStatusSuspended SubAccountStatus = "suspended"
)

// SyncState tells whether the local record matches the reseller API
type SyncState string

const (
	SyncStateSynced  SyncState = "synced"
	SyncStatePending SyncState = "pending"
)

// SyncStatus is Synced(externalID) or Pending(lastError).
// A pending status may still carry an external id when a later update failed to propagate.
type SyncStatus struct {
	State      SyncState `json:"state"`
	ExternalID *int64    `json:"external_id,omitempty"`
	LastError  *string   `json:"last_error,omitempty"`
}

// Synced reports whether the remote copy is up to date
func (s SyncStatus) Synced() bool {
	return s.State == SyncStateSynced
}

// SubAccount is a customer-facing proxy credential, optionally linked to a reseller sub-user
type SubAccount struct {
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
	SyncedAt     *time.Time       `db:"synced_at" json:"synced_at,omitempty"`
	DeletedAt    *time.Time       `db:"deleted_at" json:"-"`
	ResellerID   *int64           `db:"reseller_id" json:"reseller_id,omitempty"`
	SyncError    *string          `db:"sync_error" json:"-"`
	Username     string           `db:"username" json:"username"`
	Email        string           `db:"email" json:"email"`
	PasswordHash string           `db:"password_hash" json:"-"`
	Status       SubAccountStatus `db:"status" json:"status"`
	AllowedIPs   []string         `db:"allowed_ips" json:"allowed_ips"`
	Balance      decimal.Decimal  `db:"balance" json:"balance"`
	ID           int64            `db:"id" json:"id"`
	AccountID    int64            `db:"account_id" json:"account_id"`
	Threads      int              `db:"threads" json:"threads"`
}

// SyncStatus derives the sync status from the stored reseller id and last error
func (s *SubAccount) SyncStatus() SyncStatus {
	if s.ResellerID != nil && s.SyncError == nil {
		return SyncStatus{State: SyncStateSynced, ExternalID: s.ResellerID}
	}
	return SyncStatus{State: SyncStatePending, ExternalID: s.ResellerID, LastError: s.SyncError}
}
