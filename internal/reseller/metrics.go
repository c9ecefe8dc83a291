package reseller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reseller_api_requests_total",
		Help: "Reseller API requests by endpoint and response status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reseller_api_request_duration_seconds",
		Help:    "Reseller API request latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"})

	tokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reseller_token_refreshes_total",
		Help: "Reseller bearer token refresh attempts",
	}, []string{"result"})

	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reseller_circuit_breaker_state",
		Help: "Circuit breaker state: 0=closed, 1=half-open, 2=open",
	}, []string{"name"})
)
