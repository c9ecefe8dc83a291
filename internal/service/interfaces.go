package service

import (
	"context"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
	"github.com/benx421/proxy-ledger/internal/reseller"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// ResellerClient is the subset of the reseller API used by the services
type ResellerClient interface {
	CreateSubUser(ctx context.Context, params reseller.CreateSubUserParams) (*reseller.Response, error)
	UpdateSubUser(ctx context.Context, subUserID int64, params reseller.UpdateSubUserParams) (*reseller.Response, error)
	DeleteSubUser(ctx context.Context, subUserID int64) error
	GetSubUser(ctx context.Context, subUserID int64) (*reseller.Response, error)
	ListSubUsers(ctx context.Context, limit, offset int) (*reseller.Response, error)
	GetSubUserBalance(ctx context.Context, subUserID int64) (*reseller.Response, error)
	AddSubUserBalance(ctx context.Context, subUserID, traffic int64) (*reseller.Response, error)
	GetBalance(ctx context.Context) (*reseller.Response, error)
}

// WebhookProcessor handles inbound payment webhooks
type WebhookProcessor interface {
	HandleDelivery(ctx context.Context, body []byte, signature string) (*WebhookResult, error)
}

// SubAccountManager handles the sub-account lifecycle
type SubAccountManager interface {
	Create(ctx context.Context, accountID int64, input CreateSubAccountInput) (*models.SubAccount, error)
	Get(ctx context.Context, id int64) (*SubAccountDetails, error)
	List(ctx context.Context, filter repository.SubAccountFilter) ([]models.SubAccount, error)
	Update(ctx context.Context, id int64, input UpdateSubAccountInput) (*models.SubAccount, error)
	Delete(ctx context.Context, id int64) error
	AddTraffic(ctx context.Context, id, traffic int64) (*reseller.Response, error)
	ResellerBalance(ctx context.Context) (*reseller.Response, error)
}

// Ledger handles account balance reads and charges
type Ledger interface {
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListTransactions(ctx context.Context, accountID int64, limit int) ([]models.Transaction, error)
	Charge(ctx context.Context, accountID int64, input ChargeInput) (*ChargeResult, error)
}

// Ensure concrete types implement interfaces
var (
	_ ResellerClient    = (*reseller.Client)(nil)
	_ WebhookProcessor  = (*WebhookService)(nil)
	_ SubAccountManager = (*SubAccountService)(nil)
	_ Ledger            = (*BalanceService)(nil)
)
