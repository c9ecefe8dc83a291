package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benx421/proxy-ledger/internal/api"
	"github.com/benx421/proxy-ledger/internal/middleware"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	handler *Handler,
	idempotencyRepo middleware.IdempotencyRepository,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	api.RegisterDocsRoutes(r)
	r.Get("/health", handler.GetHealth)
	r.Get("/ping", handler.Ping)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/webhook/payment", handler.HandlePaymentWebhook)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyRepo, logger))

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Get("/", handler.GetAccount)
			r.Get("/transactions", handler.ListTransactions)
			r.Post("/charges", handler.CreateCharge)
			r.Post("/sub-accounts", handler.CreateSubAccount)
		})

		r.Route("/sub-accounts", func(r chi.Router) {
			r.Get("/", handler.ListSubAccounts)
			r.Get("/{id}", handler.GetSubAccount)
			r.Put("/{id}", handler.UpdateSubAccount)
			r.Delete("/{id}", handler.DeleteSubAccount)
			r.Post("/{id}/traffic", handler.AddTraffic)
		})

		r.Get("/reseller/balance", handler.GetResellerBalance)
	})

	return r
}
