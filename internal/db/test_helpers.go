package db

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/benx421/proxy-ledger/internal/config"
)

// testLockKey is the advisory lock shared by every package whose tests use the database
const testLockKey = 4201

// ConnectTest connects to the database described by the environment, takes the
// test advisory lock and applies the schema. Tests that need PostgreSQL call it
// and skip when it fails. The returned release func unlocks and closes.
//
// The lock serializes DB-backed tests across packages, which go test runs in parallel.
func ConnectTest(ctx context.Context) (*DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	database, err := Connect(ctx, &cfg.Database, discardLogger())
	if err != nil {
		return nil, nil, err
	}

	conn, err := database.Conn(ctx)
	if err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to reserve lock connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", testLockKey); err != nil {
		_ = conn.Close()
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to take test lock: %w", err)
	}

	release := func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", testLockKey) //nolint:errcheck // closing the session drops the lock anyway
		_ = conn.Close()
		_ = database.Close()
	}

	if err := database.Migrate(ctx); err != nil {
		release()
		return nil, nil, err
	}

	return database, release, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
