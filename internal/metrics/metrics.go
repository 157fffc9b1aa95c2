package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service, registered on a
// private registry so tests can create isolated instances.
type Metrics struct {
	NotificationsSentTotal *prometheus.CounterVec
	BulkJobsAdmittedTotal  prometheus.Counter

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		NotificationsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notigate_notifications_sent_total",
				Help: "Total number of single-send requests by channel and outcome",
			},
			[]string{"channel", "outcome"},
		),
		BulkJobsAdmittedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notigate_bulk_jobs_admitted_total",
				Help: "Total number of admitted bulk jobs",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notigate_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notigate_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.NotificationsSentTotal,
		m.BulkJobsAdmittedTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
	)
	return m
}

// RecordSend counts one send attempt. Safe on a nil receiver.
func (m *Metrics) RecordSend(channel string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.NotificationsSentTotal.WithLabelValues(channel, outcome).Inc()
}

// RecordBulkJob counts one admitted bulk job. Safe on a nil receiver.
func (m *Metrics) RecordBulkJob() {
	if m == nil {
		return
	}
	m.BulkJobsAdmittedTotal.Inc()
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware returns a gin middleware recording request counts and latency.
// The route template (not the raw URL) is used as the path label to keep
// cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDurationSeconds.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
