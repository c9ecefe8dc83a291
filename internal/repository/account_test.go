package repository

import (
	"context"
	"testing"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_FindByID(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewAccountRepository(database)
	existing := seedAccount(t, database, "owner@example.com", "100.00")

	tests := []struct {
		name    string
		id      int64
		wantErr bool
	}{
		{name: "existing account", id: existing.ID},
		{name: "non-existent account", id: existing.ID + 1000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := repo.FindByID(context.Background(), tt.id)

			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrNotFound)
				assert.Nil(t, account)
				return
			}

			require.NoError(t, err, "unexpected error")
			assert.Equal(t, tt.id, account.ID, "account ID mismatch")
			assert.True(t, decimal.RequireFromString("100.00").Equal(account.Balance), "balance mismatch")
		})
	}
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewAccountRepository(database)
	seedAccount(t, database, "dup@example.com", "0")

	_, err := repo.Create(context.Background(), "dup@example.com", decimal.Zero)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewAccountRepository(database)
	account := seedAccount(t, database, "owner@example.com", "100.00")

	err := repo.UpdateBalance(context.Background(), account.ID, decimal.RequireFromString("150.50"))
	require.NoError(t, err)

	updated, err := repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.5", updated.Balance.String())

	err = repo.UpdateBalance(context.Background(), account.ID+1000, decimal.Zero)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAccountRepository_FindByIDForUpdate_InTransaction(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	account := seedAccount(t, database, "locked@example.com", "10.00")

	tx, err := database.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	locked, err := NewAccountRepository(tx).FindByIDForUpdate(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, locked.ID)

	require.NoError(t, NewAccountRepository(tx).UpdateBalance(context.Background(), account.ID, decimal.NewFromInt(0)))
	require.NoError(t, tx.Rollback())

	after, err := NewAccountRepository(database).FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(after.Balance), "rolled back update must not persist")
}
