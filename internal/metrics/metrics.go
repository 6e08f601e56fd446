package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Blogs
	BlogsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blogs_created_total",
			Help: "Total blogs created",
		},
	)
	BlogReads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_reads_total",
			Help: "Total single-blog reads (each one bumps read_count)",
		},
	)
	BlogStateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_state_changes_total",
			Help: "Blog state changes by target state",
		},
		[]string{"state"},
	)

	// Auth
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Rejected authentications",
		},
		[]string{"reason"}, // missing_token|invalid_token|bad_credentials
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

// Init registers every collector on the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestLatency,
			BlogsCreated,
			BlogReads,
			BlogStateChanges,
			AuthFailures,
		)
	})
}
