package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the API. Each server owns its
// registry, so tests can build as many servers as they like.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	LatencyHistogram *prometheus.HistogramVec
	SigningCounter   *prometheus.CounterVec
	RateLimitHits    prometheus.Counter
	registry         *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlsigner_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		LatencyHistogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "urlsigner_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SigningCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlsigner_signed_urls_total",
				Help: "Signed URL generations by backend, method and result",
			},
			[]string{"backend", "method", "result"},
		),
		RateLimitHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "urlsigner_rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
		),
		registry: registry,
	}

	registry.MustRegister(m.RequestCounter)
	registry.MustRegister(m.LatencyHistogram)
	registry.MustRegister(m.SigningCounter)
	registry.MustRegister(m.RateLimitHits)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (m *Metrics) IncrementRequest(method, route string, status int) {
	m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) RecordLatency(method, route string, seconds float64) {
	m.LatencyHistogram.WithLabelValues(method, route).Observe(seconds)
}

// ObserveSigning counts one signing attempt
func (m *Metrics) ObserveSigning(backend, method string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.SigningCounter.WithLabelValues(backend, method, result).Inc()
}

func (m *Metrics) IncrementRateLimitHit() {
	m.RateLimitHits.Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
