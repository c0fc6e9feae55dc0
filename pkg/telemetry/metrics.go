package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/teleport/pkg/teleport"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "teleport").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for deploy duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango",
		Subsystem: "teleport",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a teleport.Observer exporting Prometheus metrics.
type Metrics struct {
	deploys     *prometheus.CounterVec
	withdrawals prometheus.Counter
	redirects   *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec

	now func() time.Time
}

var _ teleport.Observer = (*Metrics)(nil)

// NewMetrics registers the teleport metrics and returns the observer.
// Registering twice with the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		deploys: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deploys_total",
			Help:        "Total number of successful teleport deploy passes",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		withdrawals: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "withdrawals_total",
			Help:        "Total number of withdrawn teleported subtrees",
			ConstLabels: config.ConstLabels,
		}),

		redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirected_events_total",
			Help:        "Total number of events re-emitted on placeholders",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of teleport errors by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deploy_duration_seconds",
			Help:        "Teleport deploy pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"mode"}),

		now: time.Now,
	}
}

// DeployStarted implements teleport.Observer.
func (m *Metrics) DeployStarted(info teleport.DeployInfo) func(error) {
	start := m.now()
	mode := string(info.Mode)
	return func(err error) {
		m.duration.WithLabelValues(mode).Observe(m.now().Sub(start).Seconds())
		if err != nil {
			m.errors.WithLabelValues(teleport.ErrorKind(err)).Inc()
			return
		}
		m.deploys.WithLabelValues(mode).Inc()
	}
}

// Withdrawn implements teleport.Observer.
func (m *Metrics) Withdrawn(string) {
	m.withdrawals.Inc()
}

// Redirected implements teleport.Observer.
func (m *Metrics) Redirected(_ string, eventType string) {
	m.redirects.WithLabelValues(eventType).Inc()
}

// Rejected implements teleport.Observer.
func (m *Metrics) Rejected(_ string, err error) {
	m.errors.WithLabelValues(teleport.ErrorKind(err)).Inc()
}
