package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/benx421/proxy-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookRepository_InsertAndExists(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewWebhookRepository(database)

	exists, err := repo.Exists(context.Background(), "w1")
	require.NoError(t, err)
	assert.False(t, exists)

	record := &models.WebhookRecord{
		WebhookID: "w1",
		EventType: "payment.completed",
		Payload:   `{"webhook_id":"w1"}`,
		Signature: "abc",
		Status:    models.WebhookStatusProcessed,
	}
	require.NoError(t, repo.Insert(context.Background(), record))
	assert.NotZero(t, record.ID)

	exists, err = repo.Exists(context.Background(), "w1")
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := repo.FindByWebhookID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, models.WebhookStatusProcessed, stored.Status)
	assert.Nil(t, stored.ErrorMessage)
}

func TestWebhookRepository_Insert_Duplicate(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	repo := NewWebhookRepository(database)
	msg := "account 7: not found"

	first := &models.WebhookRecord{WebhookID: "w2", EventType: "payment.completed", Payload: "{}", Status: models.WebhookStatusFailed, ErrorMessage: &msg}
	require.NoError(t, repo.Insert(context.Background(), first))

	second := &models.WebhookRecord{WebhookID: "w2", EventType: "payment.completed", Payload: "{}", Status: models.WebhookStatusProcessed}
	err := repo.Insert(context.Background(), second)
	assert.ErrorIs(t, err, models.ErrDuplicateWebhook)

	stored, err := repo.FindByWebhookID(context.Background(), "w2")
	require.NoError(t, err)
	assert.Equal(t, models.WebhookStatusFailed, stored.Status, "first record must not be overwritten")
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, msg, *stored.ErrorMessage)
}

func TestWebhookRepository_Insert_ConcurrentSameID(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	const workers = 8

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := database.BeginTx(context.Background(), nil)
			if err != nil {
				errCh <- err
				return
			}
			err = NewWebhookRepository(tx).Insert(context.Background(), &models.WebhookRecord{
				WebhookID: "race",
				EventType: "payment.completed",
				Payload:   "{}",
				Status:    models.WebhookStatusProcessed,
			})
			if err != nil {
				_ = tx.Rollback()
				errCh <- err
				return
			}
			errCh <- tx.Commit()
		}()
	}
	wg.Wait()
	close(errCh)

	winners, duplicates := 0, 0
	for err := range errCh {
		switch {
		case err == nil:
			winners++
		case assert.ErrorIs(t, err, models.ErrDuplicateWebhook):
			duplicates++
		}
	}

	assert.Equal(t, 1, winners, "exactly one insert must win")
	assert.Equal(t, workers-1, duplicates)
}

func TestWebhookRepository_FindByWebhookID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	truncateTables(t, database)

	_, err := NewWebhookRepository(database).FindByWebhookID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
