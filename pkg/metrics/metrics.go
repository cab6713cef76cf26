package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts response cache lookups by outcome (hit|miss|stale).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "y4c_cache_lookups_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"outcome"},
	)

	// BackendRequests counts calls made to the organisation backend.
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "y4c_backend_requests_total",
			Help: "Total number of requests issued to the backend",
		},
		[]string{"method", "result"},
	)

	// DonationSubmissions records donation submission attempts by result (success|failure).
	DonationSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "y4c_donation_submissions_total",
			Help: "Total number of donation submissions",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "y4c_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
