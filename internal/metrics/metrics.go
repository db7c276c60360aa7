// Package metrics provides Prometheus instrumentation for the content
// generation service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_api_requests_total",
		Help: "Total HTTP requests handled",
	}, []string{"method", "path", "status"})

	// RequestDuration observes HTTP request latency by method and path.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_api_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"method", "path"})

	// GenerationsTotal counts generation attempts by outcome.
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_api_generations_total",
		Help: "Total content generation attempts by outcome",
	}, []string{"outcome"})

	// PersistFailures counts content store write failures. These are
	// absorbed rather than surfaced to callers, so the counter is the
	// only externally visible signal of degraded durability.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "content_api_store_persist_failures_total",
		Help: "Total content store persistence failures",
	})
)

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns a Gin middleware that records request count and
// latency. The route template is used as the path label so metrics do not
// explode on parameterized paths.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
