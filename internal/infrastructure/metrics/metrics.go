// Package metrics holds the Prometheus collectors exported by the service
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cotacao"

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	QuoteOutcomesTotal    *prometheus.CounterVec
	PersistFailuresTotal  prometheus.Counter
	ProviderRequestsTotal *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers every collector on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewMetricsWithRegistry(reg, reg)
}

// NewMetricsWithRegistry registers the service collectors on reg and
// serves them from gatherer
func NewMetricsWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		QuoteOutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quote_outcomes_total",
				Help:      "Per-date quote lookups by source and outcome",
			},
			[]string{"source", "outcome"},
		),

		PersistFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quote_persist_failures_total",
				Help:      "Quotes fetched from the provider that could not be stored",
			},
		),

		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Calls to the external rate provider by result",
			},
			[]string{"result"},
		),

		gatherer: gatherer,
	}
}

// ObserveQuote counts one per-date lookup
func (m *Metrics) ObserveQuote(source, outcome string) {
	m.QuoteOutcomesTotal.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) ObservePersistFailure() {
	m.PersistFailuresTotal.Inc()
}

// ObserveProviderCall counts a provider round trip as "ok" or "error"
func (m *Metrics) ObserveProviderCall(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.ProviderRequestsTotal.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
