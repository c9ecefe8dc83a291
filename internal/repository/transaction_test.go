package repository

import (
	"context"
	"testing"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_CreateAndList(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewTransactionRepository(database)
	account := seedAccount(t, database, "ledger@example.com", "0")
	ref := "txn_abc"

	entries := []*models.Transaction{
		{
			AccountID:   account.ID,
			Type:        models.TransactionTypeDeposit,
			Amount:      decimal.RequireFromString("50.00"),
			Description: "Payment received via webhook",
			ReferenceID: &ref,
			Status:      models.TransactionStatusCompleted,
		},
		{
			AccountID:   account.ID,
			Type:        models.TransactionTypeRefund,
			Amount:      decimal.RequireFromString("-20.00"),
			Description: "Refund processed via webhook",
			Status:      models.TransactionStatusCompleted,
		},
	}

	for _, entry := range entries {
		require.NoError(t, repo.Create(context.Background(), entry))
		assert.NotZero(t, entry.ID, "id should be assigned")
		assert.False(t, entry.CreatedAt.IsZero(), "created_at should be assigned")
	}

	listed, err := repo.ListByAccount(context.Background(), account.ID, 10)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, models.TransactionTypeRefund, listed[0].Type, "most recent first")
	assert.Equal(t, "-20", listed[0].Amount.String())
	assert.Nil(t, listed[0].ReferenceID)
	require.NotNil(t, listed[1].ReferenceID)
	assert.Equal(t, ref, *listed[1].ReferenceID)
}

func TestTransactionRepository_ListByAccount_Limit(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewTransactionRepository(database)
	account := seedAccount(t, database, "limit@example.com", "0")

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.Transaction{
			AccountID: account.ID,
			Type:      models.TransactionTypeCharge,
			Amount:    decimal.NewFromInt(-1),
			Status:    models.TransactionStatusCompleted,
		}))
	}

	listed, err := repo.ListByAccount(context.Background(), account.ID, 3)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}
