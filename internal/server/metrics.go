package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the server. Each instance has
// its own registry, so servers and tests do not share counters.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
	solveDuration  *prometheus.HistogramVec
	handler        http.Handler
}

// NewMetrics creates the collectors and registers them together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzlebook_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "puzzlebook_active_requests",
			Help: "Number of HTTP requests being served.",
		}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "puzzlebook_solve_duration_seconds",
			Help:    "Duration of successful solver runs.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"solver"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.solveDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(route string, code int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ObserveSolve records the duration of a successful solver run.
func (m *Metrics) ObserveSolve(solver string, d time.Duration) {
	m.solveDuration.WithLabelValues(solver).Observe(d.Seconds())
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
