package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_orders_created_total",
		Help: "Total number of orders created",
	})

	orderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_order_status_changes_total",
		Help: "Total number of order status transitions",
	}, []string{"to_status"})

	invoicesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_invoices_created_total",
		Help: "Total number of invoices generated from orders",
	})
)
