// Package handlers implements HTTP handlers for the ledger API.
package handlers

import (
	"log/slog"

	"github.com/benx421/proxy-ledger/internal/service"
)

// Handler serves every endpoint of the ledger API
type Handler struct {
	webhooks       service.WebhookProcessor
	subAccounts    service.SubAccountManager
	ledger         service.Ledger
	healthChecker  service.HealthChecker
	logger         *slog.Logger
	maxWebhookBody int64
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	webhooks service.WebhookProcessor,
	subAccounts service.SubAccountManager,
	ledger service.Ledger,
	healthChecker service.HealthChecker,
	maxWebhookBody int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		webhooks:       webhooks,
		subAccounts:    subAccounts,
		ledger:         ledger,
		healthChecker:  healthChecker,
		maxWebhookBody: maxWebhookBody,
		logger:         logger,
	}
}
