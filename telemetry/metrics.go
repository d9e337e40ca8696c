package telemetry

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests received, partitioned by method, route and status class.",
		},
		[]string{"method", "route", "status_class"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, partitioned by method, route and status class.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5},
		},
		[]string{"method", "route", "status_class"},
	)
)

// Book metrics
var (
	booksCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "books_created_total",
			Help: "Total number of books successfully created.",
		},
	)

	booksCreateFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "books_create_failed_total",
			Help: "Total number of failed book creations, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: validation | db
	)

	booksGetTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "books_get_total",
			Help: "Total number of single-book reads, partitioned by found (true/false).",
		},
		[]string{"found"},
	)
)

// Payment metrics
var (
	paymentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_created_total",
			Help: "Total number of gateway transactions successfully created.",
		},
	)

	paymentsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_failed_total",
			Help: "Total number of failed payment submissions, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: validation | config | gateway | network
	)

	paymentEventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_events_published_total",
			Help: "Total number of payment events published to Kafka.",
		},
	)

	paymentEventsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_events_failed_total",
			Help: "Total number of payment events that were not published, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: queue | schema | kafka
	)

	dispatcherQueueCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "payment_event_queue_current",
			Help: "Current number of items in the in-process event queue (approximate).",
		},
	)
)

// InitMetrics called on startup
func InitMetrics() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		booksCreatedTotal,
		booksCreateFailedTotal,
		booksGetTotal,
		paymentsCreatedTotal,
		paymentsFailedTotal,
		paymentEventsPublishedTotal,
		paymentEventsFailedTotal,
		dispatcherQueueCurrent,
	)
}

// PrometheusMiddleware measures one HTTP request: increments counter and observes latency.
// It uses gin.Context.FullPath() to record the *route template* (e.g., /v1/books/:id).
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next() // execute handler chain

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := c.Writer.Status()
		statusClass := fmt.Sprintf("%dxx", status/100)

		httpRequestsTotal.WithLabelValues(method, route, statusClass).Inc()
		httpRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes /metrics in Prometheus text exposition format.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
