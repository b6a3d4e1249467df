package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RidesRequestedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideledger", Name: "rides_requested_total", Help: "Total rides requested"})
	RidesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideledger", Name: "rides_completed_total", Help: "Total rides completed"})
	RidesCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideledger", Name: "rides_cancelled_total", Help: "Total rides cancelled"})
	PlatformFeesTotal   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideledger", Name: "platform_fees_units_total", Help: "Platform fees accrued, in monetary units"})
	WithdrawalsTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideledger", Name: "withdrawals_total", Help: "Total successful withdrawals"})
	WithdrawnUnitsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideledger", Name: "withdrawn_units_total", Help: "Total value withdrawn, in monetary units"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideledger", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rideledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
