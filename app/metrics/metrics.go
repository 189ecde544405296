package metrics

import (
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
			Name:    "http_request_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Domain
	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_posts_created_total",
			Help: "Total posts created",
		},
	)
	PostsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_posts_published_total",
			Help: "Total publish transitions",
		},
	)
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_logins_total",
			Help: "Total login attempts",
		},
		[]string{"outcome"}, // success|failure
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(PostsCreated)
	prometheus.MustRegister(PostsPublished)
	prometheus.MustRegister(LoginsTotal)
}
