// Package httpmetrics instruments outbound HTTP clients with the shared
// Prometheus collectors.
package httpmetrics

import (
	"net/http"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/pkg/metrics"
)

// Transport is an http.RoundTripper that records request totals and
// round-trip durations per upstream target.
type Transport struct {
	next    http.RoundTripper
	metrics *metrics.Metrics
	service string
	target  string
}

// Wrap decorates next with metrics collection. A nil next falls back to
// http.DefaultTransport. target names the upstream service (label value).
func Wrap(next http.RoundTripper, m *metrics.Metrics, service, target string) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		next:    next,
		metrics: m,
		service: service,
		target:  target,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	// Статус 0 означает, что запрос не дошёл до апстрима
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	t.metrics.RecordClientRequest(t.service, t.target, req.Method, status, duration)

	return resp, err
}
