// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the loaded dataset.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "portfolio_analytics"

// Metrics holds every collector registered by the service
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	holdings       prometheus.Gauge
	portfolioValue prometheus.Gauge
	sectionErrors  *prometheus.GaugeVec
}

// New creates a registry with Go and process collectors plus the service
// metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_cache_lookups_total",
			Help:      "View cache lookups, by view and result.",
		}, []string{"view", "result"}),
		holdings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_holdings",
			Help:      "Number of holdings in the loaded dataset.",
		}),
		portfolioValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "portfolio_value",
			Help:      "Total market value of the loaded portfolio.",
		}),
		sectionErrors: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_section_invalid",
			Help:      "1 when a dataset section failed validation at load.",
		}, []string{"section"}),
	}

	reg.MustRegister(m.requests, m.duration, m.cacheLookups, m.holdings, m.portfolioValue, m.sectionErrors)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one completed request
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveCache records a view cache hit or miss
func (m *Metrics) ObserveCache(view string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(view, result).Inc()
}

// SetDataset publishes the size and value of the loaded dataset
func (m *Metrics) SetDataset(holdings int, value decimal.Decimal) {
	m.holdings.Set(float64(holdings))
	m.portfolioValue.Set(value.InexactFloat64())
}

// SetSectionInvalid flags a dataset section that failed validation
func (m *Metrics) SetSectionInvalid(section string, invalid bool) {
	v := 0.0
	if invalid {
		v = 1
	}
	m.sectionErrors.WithLabelValues(section).Set(v)
}
