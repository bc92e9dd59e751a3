// Package metrics exposes per-outcome request counters and latency histograms
// in the Prometheus text exposition format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"redirector/internal/domain"
)

const resultLabel = "result"

// NewRegistry creates a registry preloaded with the Go runtime and process
// collectors (memory, goroutines, cpu, start time).
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RequestMetrics counts requests and records their latency, both keyed by outcome.
type RequestMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewRedirectMetrics registers the redirect lookup metrics on reg.
func NewRedirectMetrics(reg prometheus.Registerer) *RequestMetrics {
	return newRequestMetrics(reg, "redirector", "Total redirect requests", "Redirect request duration in seconds")
}

// NewShortenMetrics registers the shorten request metrics on reg.
func NewShortenMetrics(reg prometheus.Registerer) *RequestMetrics {
	return newRequestMetrics(reg, "shortener", "Total shorten requests", "Shorten request duration in seconds")
}

func newRequestMetrics(reg prometheus.Registerer, namespace, requestsHelp, durationHelp string) *RequestMetrics {
	factory := promauto.With(reg)

	return &RequestMetrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      requestsHelp,
			},
			[]string{resultLabel},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      durationHelp,
				Buckets:   prometheus.DefBuckets,
			},
			[]string{resultLabel},
		),
	}
}

// Observe records one request: a counter increment and a latency observation
// under the same outcome label.
func (m *RequestMetrics) Observe(outcome domain.Outcome, elapsed time.Duration) {
	label := string(outcome)
	m.Requests.WithLabelValues(label).Inc()
	m.Duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Handler serves the registry in the text exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
