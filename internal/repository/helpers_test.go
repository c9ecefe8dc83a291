package repository

import (
	"context"
	"testing"

	"github.com/benx421/proxy-ledger/internal/db"
	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, release, err := db.ConnectTest(context.Background())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(release)

	return database
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	_, err := database.ExecContext(context.Background(), `
		TRUNCATE TABLE transactions, sub_accounts, payment_webhooks, idempotency_keys, accounts
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func seedAccount(t *testing.T, database *db.DB, email, balance string) *models.Account {
	t.Helper()

	account, err := NewAccountRepository(database).Create(context.Background(), email, decimal.RequireFromString(balance))
	require.NoError(t, err, "failed to seed account")
	return account
}
