// Package metrics exposes service counters in the Prometheus format.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they need.
type Metrics struct {
	reg *prometheus.Registry

	sessionOps *prometheus.CounterVec // agentreport_session_operations_total
	documents  *prometheus.CounterVec // agentreport_documents_generated_total
	requests   *prometheus.CounterVec // agentreport_http_requests_total
	latency    *prometheus.HistogramVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		sessionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentreport_session_operations_total",
			Help: "Report session operations by kind (create, set, drop, default, delete).",
		}, []string{"op"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentreport_documents_generated_total",
			Help: "Report documents written, by report kind.",
		}, []string{"kind"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agentreport_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agentreport_http_request_duration_seconds",
			Help:    "HTTP request latency by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	for _, c := range []prometheus.Collector{
		m.sessionOps, m.documents, m.requests, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) SessionOp(op string) {
	m.sessionOps.WithLabelValues(op).Inc()
}

func (m *Metrics) DocumentGenerated(kind string) {
	m.documents.WithLabelValues(kind).Inc()
}

func (m *Metrics) Request(method string, status int, seconds float64) {
	m.requests.WithLabelValues(method, fmt.Sprint(status)).Inc()
	m.latency.WithLabelValues(method).Observe(seconds)
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
