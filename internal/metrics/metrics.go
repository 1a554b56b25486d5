// Package metrics provides Prometheus metrics for the ecosort UI: backend API calls made by the
// client, page views served and lazy view loads.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "ecosort"

// Manager owns the registry and every collector exposed on /metrics.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	apiRequests        *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiInFlight        prometheus.Gauge

	pageViews        *prometheus.CounterVec
	viewLoads        *prometheus.CounterVec
	viewLoadDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets (seconds) for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers the metrics on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors, pass it after WithRegistry.
func WithRuntimeCollectors() Option {
	return func(m *Manager) {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	// promhttp instrumentation only accepts the "code" and "method" labels
	m.apiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "api_client",
		Name:      "requests_total",
		Help:      "Requests sent to the backend API by status code and method",
	}, []string{"code", "method"})

	m.apiRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "api_client",
		Name:      "request_duration_seconds",
		Help:      "Backend API request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"code", "method"})

	m.apiInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "api_client",
		Name:      "in_flight_requests",
		Help:      "Backend API requests currently waiting for a response",
	})

	m.pageViews = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ui",
		Name:      "page_views_total",
		Help:      "Pages served by route name and status code",
	}, []string{"route", "code"})

	m.viewLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ui",
		Name:      "view_loads_total",
		Help:      "Deferred view loads by route name and outcome",
	}, []string{"route", "outcome"})

	m.viewLoadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ui",
		Name:      "view_load_duration_seconds",
		Help:      "Time taken to load a view on first navigation",
		Buckets:   m.histogramBuckets,
	}, []string{"route"})
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentTransport wraps next (http.DefaultTransport when nil) so every backend request is counted and timed.
func (m *Manager) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.apiInFlight,
		promhttp.InstrumentRoundTripperCounter(m.apiRequests,
			promhttp.InstrumentRoundTripperDuration(m.apiRequestDuration, next),
		),
	)
}

// ObservePageView counts a page served for route
func (m *Manager) ObservePageView(route string, status int) {
	m.pageViews.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveViewLoad records a completed view load. The signature matches routes.LoadHook.
func (m *Manager) ObserveViewLoad(route string, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.viewLoads.WithLabelValues(route, outcome).Inc()
	m.viewLoadDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
