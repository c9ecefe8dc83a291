package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
	"github.com/benx421/proxy-ledger/internal/reseller"
)

const (
	remoteLookupPageSize = 100
	remoteLookupMaxPages = 50
)

// CreateSubAccountInput is the request to create a sub-account under an account
type CreateSubAccountInput struct {
	Username   string          `json:"username" validate:"required,min=3,max=255,printascii"`
	Email      string          `json:"email" validate:"required,email,max=255"`
	Password   string          `json:"password" validate:"required,min=8,max=72"`
	AllowedIPs []string        `json:"allowed_ips" validate:"omitempty,dive,ip"`
	Balance    decimal.Decimal `json:"balance"`
	Threads    int             `json:"threads" validate:"omitempty,min=1,max=10000"`
}

// UpdateSubAccountInput holds the fields to change. Nil fields are left as they are.
type UpdateSubAccountInput struct {
	Username   *string                  `json:"username" validate:"omitempty,min=3,max=255,printascii"`
	Email      *string                  `json:"email" validate:"omitempty,email,max=255"`
	Password   *string                  `json:"password" validate:"omitempty,min=8,max=72"`
	Status     *models.SubAccountStatus `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Threads    *int                     `json:"threads" validate:"omitempty,min=1,max=10000"`
	AllowedIPs *[]string                `json:"allowed_ips" validate:"omitempty,dive,ip"`
}

// SubAccountDetails is a local sub-account plus whatever the reseller reported about it
type SubAccountDetails struct {
	Remote        map[string]any `json:"remote,omitempty"`
	RemoteBalance map[string]any `json:"remote_balance,omitempty"`
	RemoteError   string         `json:"remote_error,omitempty"`
	*models.SubAccount
	Sync models.SyncStatus `json:"sync"`
}

// SubAccountService manages sub-accounts locally and mirrors them to the reseller.
// Remote failures never undo a local change; they leave the record pending.
type SubAccountService struct {
	subAccounts repository.SubAccountRepository
	accounts    repository.AccountRepository
	reseller    ResellerClient
	logger      *slog.Logger
}

// NewSubAccountService creates a new SubAccountService
func NewSubAccountService(
	subAccounts repository.SubAccountRepository,
	accounts repository.AccountRepository,
	client ResellerClient,
	logger *slog.Logger,
) *SubAccountService {
	return &SubAccountService{
		subAccounts: subAccounts,
		accounts:    accounts,
		reseller:    client,
		logger:      logger,
	}
}

// Create stores a sub-account and then tries to create it on the reseller side
func (s *SubAccountService) Create(ctx context.Context, accountID int64, input CreateSubAccountInput) (*models.SubAccount, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Balance.IsNegative() {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: "balance must not be negative"}
	}

	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
		}
		return nil, internalError("failed to load account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("failed to hash password", err)
	}

	threads := input.Threads
	if threads == 0 {
		threads = reseller.DefaultThreads
	}

	sub := &models.SubAccount{
		AccountID:    accountID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Balance:      input.Balance.Round(2),
		Status:       models.SubAccountStatusActive,
		Threads:      threads,
		AllowedIPs:   input.AllowedIPs,
	}

	if err := s.subAccounts.Create(ctx, sub); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, &ServiceError{Code: ErrCodeConflict, Message: "username or email already in use"}
		}
		return nil, internalError("failed to create sub-account", err)
	}

	s.logger.Info("sub-account created", "sub_account_id", sub.ID, "account_id", accountID)
	s.pushCreate(ctx, sub)

	return sub, nil
}

// Get returns the local record and, when synced, the reseller's view of it
func (s *SubAccountService) Get(ctx context.Context, id int64) (*SubAccountDetails, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &SubAccountDetails{SubAccount: sub, Sync: sub.SyncStatus()}
	if sub.ResellerID == nil {
		return details, nil
	}

	remote, err := s.reseller.GetSubUser(ctx, *sub.ResellerID)
	if err != nil {
		s.logger.Warn("failed to fetch remote sub-user", "sub_account_id", id, "error", err)
		details.RemoteError = err.Error()
		return details, nil
	}
	details.Remote = remote.Fields()

	balance, err := s.reseller.GetSubUserBalance(ctx, *sub.ResellerID)
	if err != nil {
		s.logger.Warn("failed to fetch remote sub-user balance", "sub_account_id", id, "error", err)
		details.RemoteError = err.Error()
		return details, nil
	}
	details.RemoteBalance = balance.Fields()

	return details, nil
}

// List returns live local sub-accounts matching the filter
func (s *SubAccountService) List(ctx context.Context, filter repository.SubAccountFilter) ([]models.SubAccount, error) {
	if filter.Status != "" {
		switch filter.Status {
		case models.SubAccountStatusActive, models.SubAccountStatusInactive, models.SubAccountStatusSuspended:
		default:
			return nil, &ServiceError{Code: ErrCodeValidationFailed, Message: "status must be one of: active inactive suspended"}
		}
	}

	subs, err := s.subAccounts.List(ctx, filter)
	if err != nil {
		return nil, internalError("failed to list sub-accounts", err)
	}
	return subs, nil
}

// Update changes local fields and pushes label and threads to the reseller when linked
func (s *SubAccountService) Update(ctx context.Context, id int64, input UpdateSubAccountInput) (*models.SubAccount, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		sub.Username = *input.Username
	}
	if input.Email != nil {
		sub.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internalError("failed to hash password", err)
		}
		sub.PasswordHash = string(hash)
	}
	if input.Status != nil {
		sub.Status = *input.Status
	}
	if input.Threads != nil {
		sub.Threads = *input.Threads
	}
	if input.AllowedIPs != nil {
		sub.AllowedIPs = *input.AllowedIPs
	}

	if err := s.subAccounts.Update(ctx, sub); err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			return nil, &ServiceError{Code: ErrCodeConflict, Message: "username or email already in use"}
		case errors.Is(err, models.ErrNotFound):
			return nil, &ServiceError{Code: ErrCodeSubAccountNotFound, Message: "sub-account not found"}
		default:
			return nil, internalError("failed to update sub-account", err)
		}
	}

	if sub.ResellerID != nil {
		s.pushUpdate(ctx, sub)
	}

	return sub, nil
}

// Delete soft-deletes the sub-account locally and removes it remotely when linked
func (s *SubAccountService) Delete(ctx context.Context, id int64) error {
	sub, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.subAccounts.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ServiceError{Code: ErrCodeSubAccountNotFound, Message: "sub-account not found"}
		}
		return internalError("failed to delete sub-account", err)
	}

	if sub.ResellerID != nil {
		s.pushDelete(ctx, sub)
	}

	return nil
}

// AddTraffic tops up the remote traffic balance of a linked sub-account
func (s *SubAccountService) AddTraffic(ctx context.Context, id, traffic int64) (*reseller.Response, error) {
	if traffic <= 0 {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: "traffic must be positive"}
	}

	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.ResellerID == nil {
		return nil, &ServiceError{Code: ErrCodeNotSynced, Message: "sub-account is not linked to the reseller yet"}
	}

	resp, err := s.reseller.AddSubUserBalance(ctx, *sub.ResellerID, traffic)
	if err != nil {
		return nil, remoteError(err)
	}

	s.logger.Info("sub-account traffic added", "sub_account_id", id, "traffic", traffic)
	return resp, nil
}

// ResellerBalance returns the reseller's own balance
func (s *SubAccountService) ResellerBalance(ctx context.Context) (*reseller.Response, error) {
	resp, err := s.reseller.GetBalance(ctx)
	if err != nil {
		return nil, remoteError(err)
	}
	return resp, nil
}

// RetryPendingSync pushes up to limit pending sub-accounts to the reseller and
// returns how many ended up synced. Deleted sub-accounts count once their
// remote sub-user is removed.
func (s *SubAccountService) RetryPendingSync(ctx context.Context, limit int) (int, error) {
	pending, err := s.subAccounts.ListPendingSync(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending sub-accounts: %w", err)
	}

	synced := 0
	for i := range pending {
		if ctx.Err() != nil {
			return synced, ctx.Err()
		}

		sub := &pending[i]
		switch {
		case sub.DeletedAt != nil:
			if s.pushDelete(ctx, sub) {
				synced++
			}
			continue
		case sub.ResellerID == nil:
			s.adoptOrCreate(ctx, sub)
		default:
			s.pushUpdate(ctx, sub)
		}
		if sub.SyncStatus().Synced() {
			synced++
		}
	}

	if len(pending) > 0 {
		s.logger.Info("sub-account sync retry finished", "pending", len(pending), "synced", synced)
	}
	return synced, nil
}

func (s *SubAccountService) find(ctx context.Context, id int64) (*models.SubAccount, error) {
	sub, err := s.subAccounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeSubAccountNotFound, Message: "sub-account not found"}
		}
		return nil, internalError("failed to load sub-account", err)
	}
	return sub, nil
}

// pushCreate creates the remote sub-user and records the outcome on sub
func (s *SubAccountService) pushCreate(ctx context.Context, sub *models.SubAccount) {
	resp, err := s.reseller.CreateSubUser(ctx, reseller.CreateSubUserParams{
		Label:      sub.Username,
		Threads:    sub.Threads,
		AllowedIPs: sub.AllowedIPs,
	})
	if err != nil {
		s.markPending(ctx, sub, "create", err.Error())
		return
	}

	resellerID, ok := resp.Int64("id")
	if !ok {
		s.markPending(ctx, sub, "create", "reseller response has no sub-user id")
		return
	}

	s.markSynced(ctx, sub, "create", resellerID)
}

// adoptOrCreate links an unlinked sub-account to a remote sub-user with the same
// label when one exists. Such a sub-user is left behind by a create whose answer
// or bookkeeping was lost. A create is only sent once the listing shows none.
func (s *SubAccountService) adoptOrCreate(ctx context.Context, sub *models.SubAccount) {
	remote, err := s.findRemote(ctx, sub.Username)
	if err != nil {
		s.markPending(ctx, sub, "create", "lookup before create failed: "+err.Error())
		return
	}
	if remote == nil {
		s.pushCreate(ctx, sub)
		return
	}

	resellerID, ok := remote.Int64("id")
	if !ok {
		s.markPending(ctx, sub, "create", "remote sub-user with this label has no id")
		return
	}

	s.logger.Info("adopting existing remote sub-user", "sub_account_id", sub.ID, "reseller_id", resellerID)
	s.markSynced(ctx, sub, "create", resellerID)
}

// findRemote pages through the reseller's sub-users looking for the label
func (s *SubAccountService) findRemote(ctx context.Context, label string) (*reseller.Response, error) {
	for page := range remoteLookupMaxPages {
		resp, err := s.reseller.ListSubUsers(ctx, remoteLookupPageSize, page*remoteLookupPageSize)
		if err != nil {
			return nil, err
		}
		if match := resp.FindItem("label", label); match != nil {
			return match, nil
		}
		if len(resp.Items()) < remoteLookupPageSize {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("sub-user listing longer than %d pages", remoteLookupMaxPages)
}

// pushDelete removes the remote sub-user of a deleted sub-account. A failure is
// recorded on the row so the retry job picks it up again.
func (s *SubAccountService) pushDelete(ctx context.Context, sub *models.SubAccount) bool {
	if err := s.reseller.DeleteSubUser(ctx, *sub.ResellerID); err != nil {
		s.markPending(ctx, sub, "delete", err.Error())
		return false
	}

	subAccountSyncs.WithLabelValues("delete", "success").Inc()
	if err := s.subAccounts.MarkRemoteDeleted(ctx, sub.ID); err != nil {
		s.logger.Error("failed to record remote sub-user delete",
			"sub_account_id", sub.ID, "reseller_id", *sub.ResellerID, "error", err)
		return false
	}

	s.logger.Info("remote sub-user deleted", "sub_account_id", sub.ID, "reseller_id", *sub.ResellerID)
	sub.ResellerID = nil
	sub.SyncError = nil
	return true
}

// pushUpdate sends label and threads for a linked sub-account
func (s *SubAccountService) pushUpdate(ctx context.Context, sub *models.SubAccount) {
	label := sub.Username
	threads := sub.Threads
	params := reseller.UpdateSubUserParams{Label: &label, Threads: &threads}
	if sub.AllowedIPs != nil {
		ips := sub.AllowedIPs
		params.AllowedIPs = &ips
	}

	if _, err := s.reseller.UpdateSubUser(ctx, *sub.ResellerID, params); err != nil {
		s.markPending(ctx, sub, "update", err.Error())
		return
	}

	s.markSynced(ctx, sub, "update", *sub.ResellerID)
}

func (s *SubAccountService) markSynced(ctx context.Context, sub *models.SubAccount, op string, resellerID int64) {
	subAccountSyncs.WithLabelValues(op, "success").Inc()

	if err := s.subAccounts.MarkSynced(ctx, sub.ID, resellerID); err != nil {
		s.logger.Error("failed to record sub-account sync",
			"sub_account_id", sub.ID, "reseller_id", resellerID, "error", err)
		msg := "sync succeeded but was not recorded: " + err.Error()
		sub.ResellerID = &resellerID
		sub.SyncError = &msg
		return
	}

	sub.ResellerID = &resellerID
	sub.SyncError = nil
	s.logger.Info("sub-account synced", "sub_account_id", sub.ID, "reseller_id", resellerID, "operation", op)
}

func (s *SubAccountService) markPending(ctx context.Context, sub *models.SubAccount, op, reason string) {
	subAccountSyncs.WithLabelValues(op, "failure").Inc()
	s.logger.Warn("sub-account sync failed", "sub_account_id", sub.ID, "operation", op, "error", reason)

	sub.SyncError = &reason
	if err := s.subAccounts.MarkPending(ctx, sub.ID, reason); err != nil {
		s.logger.Error("failed to record sub-account sync failure", "sub_account_id", sub.ID, "error", err)
	}
}

func remoteError(err error) error {
	var authErr *reseller.AuthError
	if errors.As(err, &authErr) {
		return &ServiceError{Code: ErrCodeRemoteAPI, Message: "reseller authentication failed", Err: err}
	}
	return &ServiceError{Code: ErrCodeRemoteAPI, Message: "reseller api request failed", Err: err}
}
