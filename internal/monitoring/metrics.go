// Package monitoring defines the Prometheus collectors the API exposes on
// /metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	TextsAnalyzedTotal  prometheus.Counter
	PipelineDuration    prometheus.Histogram
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	TopicModelsTotal    *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		TextsAnalyzedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "texts_analyzed_total",
				Help: "Total number of texts run through the cleaning and scoring pipeline.",
			},
		),
		PipelineDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pipeline_duration_seconds",
				Help:    "Cleaning plus scoring latency per text in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "result_cache_hits_total",
				Help: "Total number of result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "result_cache_misses_total",
				Help: "Total number of result cache misses.",
			},
		),
		TopicModelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "topic_models_total",
				Help: "Total topic extraction runs by algorithm.",
			},
			[]string{"algorithm"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TextsAnalyzedTotal,
		m.PipelineDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.TopicModelsTotal,
	)
	return m
}
