package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of an iPay call.
const (
	OutcomeSuccess = "success"
	OutcomeFault   = "fault"
	OutcomeError   = "error"
)

var (
	IpayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipay_calls_total",
			Help: "Total number of iPay SOAP calls",
		},
		[]string{"operation", "outcome"},
	)

	IpayCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ipay_call_seconds",
			Help:    "Time spent waiting for iPay",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
