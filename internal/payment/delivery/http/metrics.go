package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_payments_started_total",
		Help: "Total number of gateway payments started",
	})

	paymentCallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_payment_callbacks_total",
		Help: "Total number of gateway callbacks processed by final status",
	}, []string{"status"})
)
