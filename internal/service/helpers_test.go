package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/benx421/proxy-ledger/internal/db"
	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/benx421/proxy-ledger/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// decimalEq matches a decimal argument by value rather than representation
func decimalEq(value string) any {
	want := decimal.RequireFromString(value)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func mustEvent(t *testing.T, body string) *PaymentEvent {
	t.Helper()
	event, err := decodePaymentEvent([]byte(body))
	require.NoError(t, err)
	return event
}

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, release, err := db.ConnectTest(context.Background())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(release)

	return database
}

func seedAccount(t *testing.T, database *db.DB, balance string) *models.Account {
	t.Helper()

	email := "acct-" + synthesizeWebhookID() + "@example.com"
	account, err := repository.NewAccountRepository(database).Create(context.Background(), email, decimal.RequireFromString(balance))
	require.NoError(t, err)
	return account
}
