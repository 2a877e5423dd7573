package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatbotRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_requests_total",
			Help: "Total number of routing runs by route and result kind",
		},
		[]string{"route", "outcome"},
	)

	ChatbotNodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbot_node_duration_seconds",
			Help:    "Duration of routing graph nodes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"node"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)

	SummaryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_lookups_total",
			Help: "Summary cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
