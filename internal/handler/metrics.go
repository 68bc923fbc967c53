package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comforty",
		Subsystem: "checkout",
		Name:      "orders_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"status"})

	emailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "comforty",
		Subsystem: "checkout",
		Name:      "email_failures_total",
		Help:      "Orders persisted whose confirmation email failed.",
	})

	receiptsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "comforty",
		Subsystem: "receipts",
		Name:      "generated_total",
		Help:      "Receipt PDFs generated.",
	})
)
