package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benx421/proxy-ledger/internal/models"
)

func storeResponse(t *testing.T, repo IdempotencyRepository, key, path string, status int, body string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Store(context.Background(), &models.IdempotencyKey{
		Key:            key,
		RequestPath:    path,
		ResponseStatus: status,
		ResponseBody:   body,
		CreatedAt:      createdAt,
	}))
}

func TestIdempotencyRepository_ChargeReplay(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)
	repo := NewIdempotencyRepository(database)
	ctx := context.Background()

	charge := `{"transaction":{"id":12,"type":"charge","amount":"-12.50"},"balance":"87.50"}`
	storeResponse(t, repo, "charge-7-a", "/api/v1/accounts/7/charges", 201, charge, time.Time{})

	got, err := repo.Get(ctx, "charge-7-a", "/api/v1/accounts/7/charges")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseStatus)
	assert.JSONEq(t, charge, got.ResponseBody)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute, "zero CreatedAt is stamped on store")

	// A retried charge that raced the first one must not replace the stored result.
	storeResponse(t, repo, "charge-7-a", "/api/v1/accounts/7/charges", 201, `{"balance":"75.00"}`, time.Time{})
	got, err = repo.Get(ctx, "charge-7-a", "/api/v1/accounts/7/charges")
	require.NoError(t, err)
	assert.JSONEq(t, charge, got.ResponseBody)

	missing, err := repo.Get(ctx, "charge-7-b", "/api/v1/accounts/7/charges")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdempotencyRepository_KeyScopedToConcretePath(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)
	repo := NewIdempotencyRepository(database)

	// Clients commonly reuse one key generator across accounts and sub-accounts.
	paths := []string{
		"/api/v1/accounts/7/charges",
		"/api/v1/accounts/8/charges",
		"/api/v1/accounts/7/sub-accounts",
		"/api/v1/sub-accounts/3/traffic",
	}
	for i, path := range paths {
		storeResponse(t, repo, "shared-key", path, 200+i, fmt.Sprintf(`{"n":%d}`, i), time.Time{})
	}

	for i, path := range paths {
		got, err := repo.Get(context.Background(), "shared-key", path)
		require.NoError(t, err, path)
		require.NotNil(t, got, path)
		assert.Equal(t, 200+i, got.ResponseStatus, path)
	}
}

func TestIdempotencyRepository_ConcurrentStoresKeepOneRow(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)
	repo := NewIdempotencyRepository(database)

	const writers = 6
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Store(context.Background(), &models.IdempotencyKey{
				Key:            "traffic-once",
				RequestPath:    "/api/v1/sub-accounts/3/traffic",
				ResponseStatus: 200,
				ResponseBody:   fmt.Sprintf(`{"writer":%d}`, i),
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	var rows int
	err := database.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM idempotency_keys WHERE key = 'traffic-once'`).Scan(&rows)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestIdempotencyRepository_PruneByTTL(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)
	repo := NewIdempotencyRepository(database)

	// The prune job deletes keys older than now - IDEMPOTENCY_KEY_TTL.
	const keyTTL = 24 * time.Hour
	now := time.Now().Truncate(time.Second)
	cutoff := now.Add(-keyTTL)

	ages := map[string]time.Duration{
		"two-days":      48 * time.Hour,
		"just-expired":  keyTTL + time.Second,
		"at-cutoff":     keyTTL,
		"still-fresh":   keyTTL - time.Minute,
		"just-received": 0,
	}
	for key, age := range ages {
		storeResponse(t, repo, key, "/api/v1/accounts/7/charges", 201, `{}`, now.Add(-age))
	}

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	for key, age := range ages {
		got, err := repo.Get(context.Background(), key, "/api/v1/accounts/7/charges")
		require.NoError(t, err, key)
		if age > keyTTL {
			assert.Nil(t, got, "%s should be pruned", key)
		} else {
			assert.NotNil(t, got, "%s should survive", key)
		}
	}

	again, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Zero(t, again, "pruning is idempotent")
}
