package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
	repomocks "github.com/benx421/proxy-ledger/internal/repository/mocks"
	"github.com/benx421/proxy-ledger/internal/reseller"
	resellermocks "github.com/benx421/proxy-ledger/internal/reseller/mocks"
)

type subAccountFixture struct {
	subs     *repomocks.MockSubAccountRepository
	accounts *repomocks.MockAccountRepository
	client   *resellermocks.MockResellerClient
	service  *SubAccountService
}

func newSubAccountFixture(t *testing.T) *subAccountFixture {
	f := &subAccountFixture{
		subs:     repomocks.NewMockSubAccountRepository(t),
		accounts: repomocks.NewMockAccountRepository(t),
		client:   resellermocks.NewMockResellerClient(t),
	}
	f.service = NewSubAccountService(f.subs, f.accounts, f.client, testLogger())
	return f
}

func remoteResponse(data map[string]any) *reseller.Response {
	return &reseller.Response{StatusCode: 200, Data: data}
}

func int64Ptr(v int64) *int64 { return &v }

func validCreateInput() CreateSubAccountInput {
	return CreateSubAccountInput{
		Username:   "proxy_alice",
		Email:      "alice@example.com",
		Password:   "correct-horse",
		AllowedIPs: []string{"203.0.113.7"},
	}
}

func TestSubAccountService_Create(t *testing.T) {
	t.Run("creates locally then links remote sub-user", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.accounts.On("FindByID", ctx, int64(1)).Return(&models.Account{ID: 1}, nil)
		f.subs.On("Create", ctx, mock.MatchedBy(func(sub *models.SubAccount) bool {
			return sub.Username == "proxy_alice" &&
				sub.Threads == reseller.DefaultThreads &&
				sub.Status == models.SubAccountStatusActive &&
				bcrypt.CompareHashAndPassword([]byte(sub.PasswordHash), []byte("correct-horse")) == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.SubAccount).ID = 10
		}).Return(nil)
		f.client.On("CreateSubUser", ctx, reseller.CreateSubUserParams{
			Label:      "proxy_alice",
			Threads:    reseller.DefaultThreads,
			AllowedIPs: []string{"203.0.113.7"},
		}).Return(remoteResponse(map[string]any{"id": int64(555)}), nil)
		f.subs.On("MarkSynced", ctx, int64(10), int64(555)).Return(nil)

		sub, err := f.service.Create(ctx, 1, validCreateInput())

		require.NoError(t, err)
		status := sub.SyncStatus()
		assert.True(t, status.Synced())
		assert.Equal(t, int64(555), *status.ExternalID)
	})

	t.Run("remote failure leaves the local record pending", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.accounts.On("FindByID", ctx, int64(1)).Return(&models.Account{ID: 1}, nil)
		f.subs.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.SubAccount).ID = 11
		}).Return(nil)
		remoteErr := &reseller.RemoteAPIError{Method: "POST", Path: "/sub-user/create", Status: 503, Body: "maintenance"}
		f.client.On("CreateSubUser", ctx, mock.Anything).Return(nil, remoteErr)
		f.subs.On("MarkPending", ctx, int64(11), remoteErr.Error()).Return(nil)

		sub, err := f.service.Create(ctx, 1, validCreateInput())

		require.NoError(t, err)
		status := sub.SyncStatus()
		assert.False(t, status.Synced())
		assert.Nil(t, status.ExternalID)
		require.NotNil(t, status.LastError)
		assert.Contains(t, *status.LastError, "maintenance")
	})

	t.Run("remote answer without id is pending", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.accounts.On("FindByID", ctx, int64(1)).Return(&models.Account{ID: 1}, nil)
		f.subs.On("Create", ctx, mock.Anything).Return(nil)
		f.client.On("CreateSubUser", ctx, mock.Anything).Return(remoteResponse(map[string]any{"ok": true}), nil)
		f.subs.On("MarkPending", ctx, int64(0), "reseller response has no sub-user id").Return(nil)

		sub, err := f.service.Create(ctx, 1, validCreateInput())

		require.NoError(t, err)
		assert.False(t, sub.SyncStatus().Synced())
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.accounts.On("FindByID", ctx, int64(9)).Return(nil, fmt.Errorf("account 9: %w", models.ErrNotFound))

		_, err := f.service.Create(ctx, 9, validCreateInput())

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeAccountNotFound, svcErr.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.accounts.On("FindByID", ctx, int64(1)).Return(&models.Account{ID: 1}, nil)
		f.subs.On("Create", ctx, mock.Anything).Return(fmt.Errorf("sub-account proxy_alice: %w", models.ErrConflict))

		_, err := f.service.Create(ctx, 1, validCreateInput())

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeConflict, svcErr.Code)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*CreateSubAccountInput)
		}{
			{name: "missing username", mutate: func(in *CreateSubAccountInput) { in.Username = "" }},
			{name: "bad email", mutate: func(in *CreateSubAccountInput) { in.Email = "not-an-email" }},
			{name: "short password", mutate: func(in *CreateSubAccountInput) { in.Password = "short" }},
			{name: "bad ip", mutate: func(in *CreateSubAccountInput) { in.AllowedIPs = []string{"300.1.1.1"} }},
			{name: "negative threads", mutate: func(in *CreateSubAccountInput) { in.Threads = -1 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newSubAccountFixture(t)
				input := validCreateInput()
				tt.mutate(&input)

				_, err := f.service.Create(context.Background(), 1, input)

				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, ErrCodeValidationFailed, svcErr.Code)
			})
		}
	})
}

func TestSubAccountService_Get(t *testing.T) {
	t.Run("unsynced record skips the remote", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(3)).Return(&models.SubAccount{ID: 3}, nil)

		details, err := f.service.Get(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, models.SyncStatePending, details.Sync.State)
		assert.Nil(t, details.Remote)
	})

	t.Run("remote details and balance", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(3)).Return(&models.SubAccount{ID: 3, ResellerID: int64Ptr(77)}, nil)
		f.client.On("GetSubUser", ctx, int64(77)).Return(remoteResponse(map[string]any{"label": "alice"}), nil)
		f.client.On("GetSubUserBalance", ctx, int64(77)).Return(remoteResponse(map[string]any{"balance": int64(2048)}), nil)

		details, err := f.service.Get(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "alice", details.Remote["label"])
		assert.Equal(t, int64(2048), details.RemoteBalance["balance"])
		assert.Empty(t, details.RemoteError)
	})

	t.Run("remote failure is reported not returned", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(3)).Return(&models.SubAccount{ID: 3, ResellerID: int64Ptr(77)}, nil)
		f.client.On("GetSubUser", ctx, int64(77)).Return(nil, &reseller.AuthError{Status: 403, Body: "denied"})

		details, err := f.service.Get(ctx, 3)

		require.NoError(t, err)
		assert.Contains(t, details.RemoteError, "auth failed")
	})

	t.Run("not found", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(3)).Return(nil, fmt.Errorf("sub-account 3: %w", models.ErrNotFound))

		_, err := f.service.Get(ctx, 3)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeSubAccountNotFound, svcErr.Code)
	})
}

func TestSubAccountService_Update(t *testing.T) {
	t.Run("linked record pushes label and threads", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()
		threads := 20

		f.subs.On("FindByID", ctx, int64(4)).Return(&models.SubAccount{ID: 4, Username: "bob", Threads: 50, ResellerID: int64Ptr(88)}, nil)
		f.subs.On("Update", ctx, mock.MatchedBy(func(sub *models.SubAccount) bool { return sub.Threads == 20 })).Return(nil)
		f.client.On("UpdateSubUser", ctx, int64(88), mock.MatchedBy(func(p reseller.UpdateSubUserParams) bool {
			return *p.Label == "bob" && *p.Threads == 20
		})).Return(remoteResponse(nil), nil)
		f.subs.On("MarkSynced", ctx, int64(4), int64(88)).Return(nil)

		sub, err := f.service.Update(ctx, 4, UpdateSubAccountInput{Threads: &threads})

		require.NoError(t, err)
		assert.True(t, sub.SyncStatus().Synced())
	})

	t.Run("remote failure keeps external id and marks pending", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()
		status := models.SubAccountStatusSuspended

		f.subs.On("FindByID", ctx, int64(4)).Return(&models.SubAccount{ID: 4, Username: "bob", Threads: 50, ResellerID: int64Ptr(88)}, nil)
		f.subs.On("Update", ctx, mock.Anything).Return(nil)
		f.client.On("UpdateSubUser", ctx, int64(88), mock.Anything).Return(nil, errors.New("connection reset"))
		f.subs.On("MarkPending", ctx, int64(4), "connection reset").Return(nil)

		sub, err := f.service.Update(ctx, 4, UpdateSubAccountInput{Status: &status})

		require.NoError(t, err)
		sync := sub.SyncStatus()
		assert.Equal(t, models.SyncStatePending, sync.State)
		assert.Equal(t, int64(88), *sync.ExternalID)
		assert.Equal(t, models.SubAccountStatusSuspended, sub.Status)
	})

	t.Run("unlinked record is not pushed", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()
		email := "new@example.com"

		f.subs.On("FindByID", ctx, int64(4)).Return(&models.SubAccount{ID: 4, Username: "bob"}, nil)
		f.subs.On("Update", ctx, mock.Anything).Return(nil)

		sub, err := f.service.Update(ctx, 4, UpdateSubAccountInput{Email: &email})

		require.NoError(t, err)
		assert.Equal(t, email, sub.Email)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newSubAccountFixture(t)
		status := models.SubAccountStatus("deleted")

		_, err := f.service.Update(context.Background(), 4, UpdateSubAccountInput{Status: &status})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeValidationFailed, svcErr.Code)
	})
}

func TestSubAccountService_Delete(t *testing.T) {
	t.Run("remote failure does not fail the delete", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(5)).Return(&models.SubAccount{ID: 5, ResellerID: int64Ptr(99)}, nil)
		f.subs.On("SoftDelete", ctx, int64(5)).Return(nil)
		f.client.On("DeleteSubUser", ctx, int64(99)).Return(errors.New("timeout"))
		f.subs.On("MarkPending", ctx, int64(5), "timeout").Return(nil)

		assert.NoError(t, f.service.Delete(ctx, 5))
	})

	t.Run("remote delete unlinks the row", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(5)).Return(&models.SubAccount{ID: 5, ResellerID: int64Ptr(99)}, nil)
		f.subs.On("SoftDelete", ctx, int64(5)).Return(nil)
		f.client.On("DeleteSubUser", ctx, int64(99)).Return(nil)
		f.subs.On("MarkRemoteDeleted", ctx, int64(5)).Return(nil)

		assert.NoError(t, f.service.Delete(ctx, 5))
		f.subs.AssertNotCalled(t, "MarkPending", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlinked record is only deleted locally", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(5)).Return(&models.SubAccount{ID: 5}, nil)
		f.subs.On("SoftDelete", ctx, int64(5)).Return(nil)

		assert.NoError(t, f.service.Delete(ctx, 5))
	})
}

func TestSubAccountService_AddTraffic(t *testing.T) {
	t.Run("not synced", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(6)).Return(&models.SubAccount{ID: 6}, nil)

		_, err := f.service.AddTraffic(ctx, 6, 1024)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeNotSynced, svcErr.Code)
	})

	t.Run("remote failure is surfaced", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(6)).Return(&models.SubAccount{ID: 6, ResellerID: int64Ptr(66)}, nil)
		f.client.On("AddSubUserBalance", ctx, int64(66), int64(1024)).
			Return(nil, &reseller.RemoteAPIError{Method: "POST", Path: "/sub-user/balance/add", Status: 500})

		_, err := f.service.AddTraffic(ctx, 6, 1024)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeRemoteAPI, svcErr.Code)
		var apiErr *reseller.RemoteAPIError
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("non positive traffic", func(t *testing.T) {
		f := newSubAccountFixture(t)

		_, err := f.service.AddTraffic(context.Background(), 6, 0)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeInvalidAmount, svcErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("FindByID", ctx, int64(6)).Return(&models.SubAccount{ID: 6, ResellerID: int64Ptr(66)}, nil)
		f.client.On("AddSubUserBalance", ctx, int64(66), int64(1024)).Return(remoteResponse(map[string]any{"balance": int64(4096)}), nil)

		resp, err := f.service.AddTraffic(ctx, 6, 1024)

		require.NoError(t, err)
		balance, ok := resp.Int64("balance")
		assert.True(t, ok)
		assert.Equal(t, int64(4096), balance)
	})
}

func TestSubAccountService_List(t *testing.T) {
	f := newSubAccountFixture(t)
	ctx := context.Background()
	filter := repository.SubAccountFilter{AccountID: 1, Status: models.SubAccountStatusActive, Search: "ali"}

	f.subs.On("List", ctx, filter).Return([]models.SubAccount{{ID: 1, Username: "alice"}}, nil)

	subs, err := f.service.List(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, subs, 1)

	_, err = f.service.List(ctx, repository.SubAccountFilter{Status: "archived"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ErrCodeValidationFailed, svcErr.Code)
}

func TestSubAccountService_RetryPendingSync(t *testing.T) {
	f := newSubAccountFixture(t)
	ctx := context.Background()
	pendingErr := "previous failure"

	f.subs.On("ListPendingSync", ctx, 50).Return([]models.SubAccount{
		{ID: 1, Username: "never_created", Threads: 50},
		{ID: 2, Username: "stale_update", Threads: 10, ResellerID: int64Ptr(202), SyncError: &pendingErr},
		{ID: 3, Username: "still_down", Threads: 50},
	}, nil)
	f.client.On("ListSubUsers", ctx, remoteLookupPageSize, 0).
		Return(remoteResponse(map[string]any{"items": []any{}}), nil)

	f.client.On("CreateSubUser", ctx, mock.MatchedBy(func(p reseller.CreateSubUserParams) bool { return p.Label == "never_created" })).
		Return(remoteResponse(map[string]any{"id": "101"}), nil)
	f.subs.On("MarkSynced", ctx, int64(1), int64(101)).Return(nil)

	f.client.On("UpdateSubUser", ctx, int64(202), mock.Anything).Return(remoteResponse(nil), nil)
	f.subs.On("MarkSynced", ctx, int64(2), int64(202)).Return(nil)

	f.client.On("CreateSubUser", ctx, mock.MatchedBy(func(p reseller.CreateSubUserParams) bool { return p.Label == "still_down" })).
		Return(nil, errors.New("dial tcp: i/o timeout"))
	f.subs.On("MarkPending", ctx, int64(3), "dial tcp: i/o timeout").Return(nil)

	synced, err := f.service.RetryPendingSync(ctx, 50)

	require.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestSubAccountService_RetryAdoptsExistingRemote(t *testing.T) {
	fullPage := func(offset int) *reseller.Response {
		items := make([]any, remoteLookupPageSize)
		for i := range items {
			items[i] = map[string]any{"id": int64(offset + i + 1), "label": fmt.Sprintf("other_%d", offset+i)}
		}
		return remoteResponse(map[string]any{"items": items})
	}

	t.Run("create answer without id is not created twice", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()
		lostID := "reseller response has no sub-user id"

		f.subs.On("ListPendingSync", ctx, 10).Return([]models.SubAccount{
			{ID: 7, Username: "proxy_alice", Threads: 50, SyncError: &lostID},
		}, nil)
		f.client.On("ListSubUsers", ctx, remoteLookupPageSize, 0).Return(fullPage(0), nil)
		f.client.On("ListSubUsers", ctx, remoteLookupPageSize, remoteLookupPageSize).
			Return(remoteResponse(map[string]any{"items": []any{
				map[string]any{"id": int64(777), "label": "proxy_alice"},
			}}), nil)
		f.subs.On("MarkSynced", ctx, int64(7), int64(777)).Return(nil)

		synced, err := f.service.RetryPendingSync(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, synced)
		f.client.AssertNotCalled(t, "CreateSubUser", mock.Anything, mock.Anything)
	})

	t.Run("unrecorded sync is adopted after MarkSynced failed", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.accounts.On("FindByID", ctx, int64(1)).Return(&models.Account{ID: 1}, nil)
		f.subs.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.SubAccount).ID = 8
		}).Return(nil)
		f.client.On("CreateSubUser", ctx, mock.Anything).Return(remoteResponse(map[string]any{"id": int64(808)}), nil).Once()
		f.subs.On("MarkSynced", ctx, int64(8), int64(808)).Return(errors.New("connection reset")).Once()

		sub, err := f.service.Create(ctx, 1, validCreateInput())
		require.NoError(t, err)
		assert.False(t, sub.SyncStatus().Synced())

		// The row is still unlinked in storage, so the retry job sees it again.
		f.subs.On("ListPendingSync", ctx, 10).Return([]models.SubAccount{
			{ID: 8, Username: "proxy_alice", Threads: 50},
		}, nil)
		f.client.On("ListSubUsers", ctx, remoteLookupPageSize, 0).
			Return(remoteResponse(map[string]any{"items": []any{
				map[string]any{"id": "808", "label": "proxy_alice"},
			}}), nil)
		f.subs.On("MarkSynced", ctx, int64(8), int64(808)).Return(nil).Once()

		synced, err := f.service.RetryPendingSync(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, synced)
		f.client.AssertNumberOfCalls(t, "CreateSubUser", 1)
	})

	t.Run("lookup failure skips the create", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("ListPendingSync", ctx, 10).Return([]models.SubAccount{
			{ID: 9, Username: "proxy_bob", Threads: 50},
		}, nil)
		f.client.On("ListSubUsers", ctx, remoteLookupPageSize, 0).Return(nil, errors.New("reseller unavailable"))
		f.subs.On("MarkPending", ctx, int64(9), "lookup before create failed: reseller unavailable").Return(nil)

		synced, err := f.service.RetryPendingSync(ctx, 10)

		require.NoError(t, err)
		assert.Zero(t, synced)
		f.client.AssertNotCalled(t, "CreateSubUser", mock.Anything, mock.Anything)
	})

	t.Run("matching sub-user without id stays pending", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("ListPendingSync", ctx, 10).Return([]models.SubAccount{
			{ID: 9, Username: "proxy_bob", Threads: 50},
		}, nil)
		f.client.On("ListSubUsers", ctx, remoteLookupPageSize, 0).
			Return(remoteResponse(map[string]any{"items": []any{map[string]any{"label": "proxy_bob"}}}), nil)
		f.subs.On("MarkPending", ctx, int64(9), "remote sub-user with this label has no id").Return(nil)

		synced, err := f.service.RetryPendingSync(ctx, 10)

		require.NoError(t, err)
		assert.Zero(t, synced)
		f.client.AssertNotCalled(t, "CreateSubUser", mock.Anything, mock.Anything)
	})
}

func TestSubAccountService_RetryDeletesOrphans(t *testing.T) {
	deletedAt := time.Now().Add(-time.Hour)
	lastErr := "timeout"

	t.Run("remote delete succeeds", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("ListPendingSync", ctx, 10).Return([]models.SubAccount{
			{ID: 5, Username: "gone", ResellerID: int64Ptr(99), SyncError: &lastErr, DeletedAt: &deletedAt},
		}, nil)
		f.client.On("DeleteSubUser", ctx, int64(99)).Return(nil)
		f.subs.On("MarkRemoteDeleted", ctx, int64(5)).Return(nil)

		synced, err := f.service.RetryPendingSync(ctx, 10)

		require.NoError(t, err)
		assert.Equal(t, 1, synced)
		f.client.AssertNotCalled(t, "UpdateSubUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remote delete fails again", func(t *testing.T) {
		f := newSubAccountFixture(t)
		ctx := context.Background()

		f.subs.On("ListPendingSync", ctx, 10).Return([]models.SubAccount{
			{ID: 5, Username: "gone", ResellerID: int64Ptr(99), SyncError: &lastErr, DeletedAt: &deletedAt},
		}, nil)
		f.client.On("DeleteSubUser", ctx, int64(99)).Return(errors.New("503 maintenance"))
		f.subs.On("MarkPending", ctx, int64(5), "503 maintenance").Return(nil)

		synced, err := f.service.RetryPendingSync(ctx, 10)

		require.NoError(t, err)
		assert.Zero(t, synced)
		f.subs.AssertNotCalled(t, "MarkRemoteDeleted", mock.Anything, mock.Anything)
	})
}

func TestSubAccountService_ResellerBalance(t *testing.T) {
	f := newSubAccountFixture(t)
	ctx := context.Background()

	f.client.On("GetBalance", ctx).Return(nil, &reseller.AuthError{Err: reseller.ErrNoToken})

	_, err := f.service.ResellerBalance(ctx)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ErrCodeRemoteAPI, svcErr.Code)
	assert.ErrorIs(t, err, reseller.ErrNoToken)
}
