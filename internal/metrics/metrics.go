package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Throughput metrics - Track operation volume
var (
	OperationsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_operations_started_total",
			Help: "Total number of operations submitted by kind",
		},
		[]string{"kind"},
	)

	OperationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_operations_completed_total",
			Help: "Total number of operations that completed successfully by kind",
		},
		[]string{"kind"},
	)

	OperationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_operations_failed_total",
			Help: "Total number of operations that failed or were cancelled by kind",
		},
		[]string{"kind"},
	)

	OperationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_operations_rejected_total",
			Help: "Triggers ignored because the same kind was already in flight",
		},
		[]string{"kind"},
	)
)

// Performance metrics - Track simulated latency
var (
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playground_operation_duration_seconds",
			Help:    "Time from submission to completion of an operation",
			Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 5, 10},
		},
		[]string{"kind"},
	)
)

// State metrics - Track current system state
var (
	OperationsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playground_operations_in_flight",
			Help: "Number of operations currently waiting on their simulated latency",
		},
		[]string{"kind"},
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "playground_active_sessions",
		Help: "Number of open playground sessions",
	})
)

// Error metrics - Track failures
var (
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_errors_total",
			Help: "Total number of errors by service",
		},
		[]string{"service"},
	)
)
