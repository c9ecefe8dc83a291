// Package jobs runs the ledger's background cron jobs.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/benx421/proxy-ledger/internal/config"
)

const jobTimeout = 5 * time.Minute

// SyncRetrier pushes pending sub-accounts to the reseller
type SyncRetrier interface {
	RetryPendingSync(ctx context.Context, limit int) (int, error)
}

// KeyPruner deletes stored idempotency keys
type KeyPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler owns the cron runner and the jobs registered on it
type Scheduler struct {
	cron    *cron.Cron
	syncer  SyncRetrier
	pruner  KeyPruner
	logger  *slog.Logger
	now     func() time.Time
	keyTTL  time.Duration
	batch   int
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewScheduler registers the sync retry and idempotency key prune jobs.
// An invalid schedule is reported here rather than at Start.
func NewScheduler(cfg *config.JobsConfig, syncer SyncRetrier, pruner KeyPruner, logger *slog.Logger) (*Scheduler, error) {
	logger = logger.With("component", "jobs")
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		syncer:  syncer,
		pruner:  pruner,
		logger:  logger,
		now:     time.Now,
		keyTTL:  cfg.IdempotencyKeyTTL,
		batch:   cfg.SyncRetryBatch,
		baseCtx: ctx,
		cancel:  cancel,
	}

	cronLogger := cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	if _, err := s.cron.AddFunc(cfg.SyncRetrySchedule, func() { s.runJob("sync_retry", s.RetrySync) }); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid sync retry schedule %q: %w", cfg.SyncRetrySchedule, err)
	}
	if _, err := s.cron.AddFunc(cfg.IdempotencyPruneSchedule, func() { s.runJob("idempotency_prune", s.PruneKeys) }); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid idempotency prune schedule %q: %w", cfg.IdempotencyPruneSchedule, err)
	}

	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RetrySync pushes one batch of pending sub-accounts
func (s *Scheduler) RetrySync(ctx context.Context) error {
	synced, err := s.syncer.RetryPendingSync(ctx, s.batch)
	if err != nil {
		return fmt.Errorf("sync retry failed after %d synced: %w", synced, err)
	}
	if synced > 0 {
		s.logger.Info("pending sub-accounts synced", "count", synced)
	}
	return nil
}

// PruneKeys deletes idempotency keys older than the configured TTL
func (s *Scheduler) PruneKeys(ctx context.Context) error {
	cutoff := s.now().Add(-s.keyTTL)
	deleted, err := s.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune idempotency keys: %w", err)
	}
	s.logger.Info("idempotency keys pruned", "deleted", deleted, "cutoff", cutoff)
	return nil
}

func (s *Scheduler) runJob(name string, job func(context.Context) error) {
	ctx, cancel := context.WithTimeout(s.baseCtx, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("job failed", "job", name, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.logger.Debug("job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
}

// cronLogger adapts slog to cron.Logger
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
