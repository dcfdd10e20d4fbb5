package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sadakreport",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Notification polling metrics
	NotificationPolls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "notifications",
		Name:      "polls_total",
		Help:      "Total successful unread-count polls",
	})

	NotificationPollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "notifications",
		Name:      "poll_errors_total",
		Help:      "Total failed unread-count polls",
	})

	NotificationAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "notifications",
		Name:      "alerts_total",
		Help:      "Total new-notification alerts raised",
	})

	// Routing metrics
	RouteComputations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "routing",
		Name:      "computations_total",
		Help:      "Total route computations requested from the routing engine",
	})

	RouteComputeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "routing",
		Name:      "compute_errors_total",
		Help:      "Total failed route computations",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sadakreport",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sadakreport",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
