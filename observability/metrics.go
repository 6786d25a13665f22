package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service's Prometheus collectors.
type Metrics struct {
	Calculations    *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SolvedPrice     prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "affordability_calculations_total",
			Help: "Engine calculations by operation.",
		}, []string{"operation"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "affordability_cache_lookups_total",
			Help: "Result cache lookups by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "affordability_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		SolvedPrice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "affordability_solved_max_price_dollars",
			Help:    "Distribution of solved maximum home prices.",
			Buckets: prometheus.ExponentialBuckets(50_000, 1.5, 12),
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.Calculations, m.CacheLookups, m.RequestDuration, m.SolvedPrice)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
