// Package metrics defines the Prometheus collectors for the settlement
// service. Collectors are registered on the default registry and exposed by
// the /metrics endpoint in cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComputationsTotal counts settlement summary computations.
	ComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripthreads_settlement_computations_total",
		Help: "Number of settlement summary computations performed.",
	})

	// ExcludedExpenses counts expenses skipped for lack of an exchange rate.
	ExcludedExpenses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripthreads_excluded_expenses_total",
		Help: "Number of expenses excluded from balances because no exchange rate was available.",
	})

	// SettleConflicts counts rejected settle transitions on already-settled records.
	SettleConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripthreads_settle_conflicts_total",
		Help: "Number of settle attempts rejected because the record was already settled.",
	})

	// RequestDuration observes HTTP request latency per route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripthreads_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
