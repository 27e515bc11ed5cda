// Package metrics exposes Prometheus instrumentation for page sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one registry.
//
// Metrics:
//   - plantdesk_sessions_active - live page sessions
//   - plantdesk_sessions_opened_total{route} - activations per route
//   - plantdesk_page_actions_total{route,action} - page operations served
//   - plantdesk_sse_clients - connected event stream clients
type Metrics struct {
	reg *prometheus.Registry

	SessionsActive prometheus.Gauge
	SessionsOpened *prometheus.CounterVec
	PageActions    *prometheus.CounterVec
}

// New creates a private registry with the process and Go runtime
// collectors plus the plantdesk metrics. clients, when non-nil, is sampled
// on every scrape for the SSE client gauge.
func New(clients func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	m := &Metrics{
		reg: reg,
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "plantdesk_sessions_active",
			Help: "Number of live page sessions",
		}),
		SessionsOpened: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantdesk_sessions_opened_total",
			Help: "Total number of page activations",
		}, []string{"route"}),
		PageActions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantdesk_page_actions_total",
			Help: "Total number of page operations served",
		}, []string{"route", "action"}),
	}
	if clients != nil {
		f.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "plantdesk_sse_clients",
			Help: "Number of connected event stream clients",
		}, func() float64 { return float64(clients()) })
	}
	return m
}

// SessionOpened records an activation of route.
func (m *Metrics) SessionOpened(route string) {
	m.SessionsActive.Inc()
	m.SessionsOpened.WithLabelValues(route).Inc()
}

// SessionClosed records a session leaving the registry.
func (m *Metrics) SessionClosed() {
	m.SessionsActive.Dec()
}

// Action records one page operation.
func (m *Metrics) Action(route, action string) {
	m.PageActions.WithLabelValues(route, action).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
