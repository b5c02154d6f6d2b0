package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds.
var latencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

type metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	searchLatency prometheus.Histogram
	searchResults prometheus.Histogram
	indexedDocs   prometheus.Gauge
}

// newMetrics builds a private registry so that several servers (tests)
// can coexist in one process.
func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docsearch_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		searchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "docsearch_search_latency_ms",
			Help:    "Time spent ranking a query in milliseconds",
			Buckets: latencyBuckets,
		}),
		searchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "docsearch_search_results",
			Help:    "Number of documents returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		indexedDocs: factory.NewGauge(prometheus.GaugeOpts{
			Name: "docsearch_indexed_documents",
			Help: "Number of documents in the loaded index",
		}),
	}
}
