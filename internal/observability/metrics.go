package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects per-operation outcomes.
type Metrics interface {
	RecordRequest(labels RequestLabels, duration time.Duration)
}

// RequestLabels contains metric dimensions.
type RequestLabels struct {
	Operation string
	Source    string
	Status    int
}

// unknownOperation bounds label cardinality for unrecognized discriminators
const unknownOperation = "unknown"

// PrometheusMetrics is a Metrics implementation backed by its own registry
type PrometheusMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	registry        *prometheus.Registry
}

// NewPrometheusMetrics creates and registers the gateway collectors
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	if namespace == "" {
		namespace = "auth_gateway"
	}

	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
	}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of auth requests by operation and status",
		},
		[]string{"operation", "source", "status"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Auth request duration in seconds, including the provider call",
			Buckets: []float64{
				.005, .01, .025, .05, .1,
				.25, .5, 1, 2.5, 5,
			},
		},
		[]string{"operation", "source"},
	)

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest records one handled request
func (m *PrometheusMetrics) RecordRequest(labels RequestLabels, duration time.Duration) {
	op := labels.Operation
	if op == "" {
		op = unknownOperation
	}
	m.requestsTotal.WithLabelValues(op, labels.Source, strconv.Itoa(labels.Status)).Inc()
	m.requestDuration.WithLabelValues(op, labels.Source).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NopMetrics discards all observations
type NopMetrics struct{}

// RecordRequest implements Metrics
func (NopMetrics) RecordRequest(RequestLabels, time.Duration) {}
