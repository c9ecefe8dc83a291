package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_deliveries_total",
		Help: "Payment webhook deliveries by outcome",
	}, []string{"outcome"})

	subAccountSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sub_account_sync_total",
		Help: "Sub-account reseller sync attempts by operation and result",
	}, []string{"operation", "result"})
)
