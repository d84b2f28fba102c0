// Package metrics holds the Prometheus collectors shared by the HTTP layer
// and the outbound integration clients.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles all collectors of the service.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	clientRequestsTotal   *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec

	activeSessions *prometheus.GaugeVec
}

// New registers the collectors on the default registry.
// serviceName is recorded as a constant label value by all callers.
func New(serviceName string) *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request processing time.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		clientRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "client_requests_total",
			Help: "Total number of outbound requests to upstream services.",
		}, []string{"service", "target", "method", "status"}),

		clientRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Outbound request round-trip time.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "target", "method"}),

		activeSessions: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "booking_sessions_active",
			Help: "Number of booking sessions currently held in memory.",
		}, []string{"service"}),
	}
}

// RecordHTTPRequest records one handled HTTP request.
func (m *Metrics) RecordHTTPRequest(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// RecordClientRequest records one outbound request to an upstream service.
// statusCode 0 means the request failed before receiving a response.
func (m *Metrics) RecordClientRequest(service, target, method string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.clientRequestsTotal.WithLabelValues(service, target, method, status).Inc()
	m.clientRequestDuration.WithLabelValues(service, target, method).Observe(duration.Seconds())
}

// SetActiveSessions publishes the current size of the session store.
func (m *Metrics) SetActiveSessions(service string, count int) {
	m.activeSessions.WithLabelValues(service).Set(float64(count))
}
