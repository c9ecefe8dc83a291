package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benx421/proxy-ledger/internal/config"
	"github.com/benx421/proxy-ledger/internal/db"
	"github.com/benx421/proxy-ledger/internal/handlers"
	"github.com/benx421/proxy-ledger/internal/jobs"
	"github.com/benx421/proxy-ledger/internal/repository"
	"github.com/benx421/proxy-ledger/internal/reseller"
	"github.com/benx421/proxy-ledger/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting proxy ledger api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"reseller_api", cfg.Reseller.BaseURL,
	)

	if cfg.Webhook.Secret == "" {
		logger.Warn("WEBHOOK_SECRET is not set; every payment webhook will be rejected")
	}
	if cfg.Reseller.Login == "" || cfg.Reseller.Password == "" {
		logger.Warn("reseller credentials are not set; sub-accounts will stay pending until they are")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1) //nolint:gocritic // deferred close is irrelevant on startup failure
	}

	resellerClient := reseller.NewClient(&cfg.Reseller, logger)

	subAccountRepo := repository.NewSubAccountRepository(database)
	accountRepo := repository.NewAccountRepository(database)
	idempotencyRepo := repository.NewIdempotencyRepository(database)

	webhookService := service.NewWebhookService(database, cfg.Webhook.Secret, logger)
	subAccountService := service.NewSubAccountService(subAccountRepo, accountRepo, resellerClient, logger)
	balanceService := service.NewBalanceService(database, logger)

	handler := handlers.NewHandler(
		webhookService,
		subAccountService,
		balanceService,
		database,
		cfg.Webhook.MaxBodyBytes,
		logger,
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewScheduler(&cfg.Jobs, subAccountService, idempotencyRepo, logger)
		if err != nil {
			logger.Error("failed to configure scheduler", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handlers.NewRouter(handler, idempotencyRepo, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
