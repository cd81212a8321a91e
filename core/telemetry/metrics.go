package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "proc_loader"

// Metrics records resource resolutions performed by the host.
type Metrics struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates a Metrics instance backed by its own registry, so several
// instances can coexist in tests.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Resource resolutions by loader plugin and outcome.",
		}, []string{"plugin", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Time spent resolving a resource, by loader plugin.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"plugin"}),
	}
	m.registry.MustRegister(
		m.resolutions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one resolution.
func (m *Metrics) Observe(plugin string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.resolutions.WithLabelValues(plugin, outcome).Inc()
	m.duration.WithLabelValues(plugin).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
