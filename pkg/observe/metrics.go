package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/domkit/pkg/delegate"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "domkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "delegate").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
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
		Namespace: "domkit",
		Subsystem: "delegate",
		// Handlers are synchronous UI callbacks; most finish well under 1ms.
		Buckets:  []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics records registry size and dispatch results.
type Metrics struct {
	listeners  *prometheus.GaugeVec
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	failures   prometheus.Counter
}

var _ delegate.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		listeners: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners",
			Help:        "Number of registered listeners",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "kind"}),

		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of wrapped handler runs by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "kind", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Time spent matching and running handlers",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event", "kind"}),

		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handler_failures_total",
			Help:        "Total number of handler runs that failed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func kind(selector string) string {
	if selector == "" {
		return "direct"
	}
	return "delegated"
}

// ListenerAdded implements delegate.Observer.
func (m *Metrics) ListenerAdded(eventName, selector string) {
	m.listeners.WithLabelValues(eventName, kind(selector)).Inc()
}

// ListenerRemoved implements delegate.Observer.
func (m *Metrics) ListenerRemoved(eventName, selector string) {
	m.listeners.WithLabelValues(eventName, kind(selector)).Dec()
}

// Dispatched implements delegate.Observer.
func (m *Metrics) Dispatched(d delegate.Dispatch) {
	k := kind(d.Selector)
	m.dispatches.WithLabelValues(d.EventName, k, d.Outcome.String()).Inc()
	m.duration.WithLabelValues(d.EventName, k).Observe(d.Duration.Seconds())
	if d.Outcome == delegate.OutcomeFailed {
		m.failures.Inc()
	}
}
