package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quizdeck",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quizdeck",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	// SubmissionCounter counts graded answers by result.
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quizdeck",
			Name:      "submissions_total",
			Help:      "Total number of graded answer submissions",
		},
		[]string{"result"},
	)

	// DeckMutationCounter counts persisted admin edits by operation.
	DeckMutationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quizdeck",
			Name:      "deck_mutations_total",
			Help:      "Total number of persisted question edits",
		},
		[]string{"operation"},
	)
)

// InitMetrics registers the collectors with reg.
func InitMetrics(reg prometheus.Registerer) {
	reg.MustRegister(RequestCounter, RequestDuration, SubmissionCounter, DeckMutationCounter)
}

// Metrics records request count and latency per route pattern.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Render chain errors here so the recorded status is the one sent.
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		RequestCounter.WithLabelValues(c.Method(), route, status).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}

// MetricsHandler exposes gatherer in the Prometheus text format.
func MetricsHandler(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
