package middleware

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "colloquy").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "colloquy",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the renderer.
type metrics struct {
	rendersTotal     *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	renderErrors     *prometheus.CounterVec
	rendersInFlight  prometheus.Gauge
	commentsRendered prometheus.Counter
	pagesPublished   prometheus.Counter
	publishErrors    prometheus.Counter
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render operations by op, mode, and status",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "mode", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds by op and mode",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op", "mode"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of render errors by op and error type",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "error_type"}),

		rendersInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_in_flight",
			Help:        "Number of render operations currently executing",
			ConstLabels: config.ConstLabels,
		}),

		commentsRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "comments_rendered_total",
			Help:        "Total number of comments emitted by list renders",
			ConstLabels: config.ConstLabels,
		}),

		pagesPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pages_published_total",
			Help:        "Total number of pages written by the publisher",
			ConstLabels: config.ConstLabels,
		}),

		publishErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "publish_errors_total",
			Help:        "Total number of failed publish operations",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// render operations.
//
// Metrics collected:
//   - colloquy_renders_total: Counter of renders by op, mode, and status
//   - colloquy_render_duration_seconds: Histogram of render duration
//   - colloquy_render_errors_total: Counter of render errors by op and error type
//   - colloquy_renders_in_flight: Gauge of renders currently executing
//   - colloquy_comments_rendered_total: Counter of comments emitted
//   - colloquy_pages_published_total: Counter of published pages (via RecordPagesPublished)
//   - colloquy_publish_errors_total: Counter of publish failures (via RecordPublishError)
//
// Example:
//
//	cfg := colloquy.DefaultConfig()
//	cfg.Middleware = []middleware.Middleware{
//	    middleware.Prometheus(middleware.WithNamespace("myblog")),
//	}
//	engine := colloquy.New(cfg)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return MiddlewareFunc(func(ctx context.Context, r *Render, next Next) error {
		op := r.Op
		if op == "" {
			op = "unknown"
		}

		m.rendersInFlight.Inc()
		start := time.Now()

		err := next(ctx)

		m.rendersInFlight.Dec()
		m.renderDuration.WithLabelValues(op, r.Mode).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.renderErrors.WithLabelValues(op, categorizeError(err)).Inc()
		}
		m.rendersTotal.WithLabelValues(op, r.Mode, status).Inc()

		if r.Comments > 0 {
			m.commentsRendered.Add(float64(r.Comments))
		}

		return err
	})
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "format"):
		return "formatter"
	case strings.Contains(errStr, "write"):
		return "write"
	case strings.Contains(errStr, "not found"):
		return "not_found"
	default:
		return "internal"
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordPagesPublished records pages written by the publisher.
// Call this from publish code after a successful run.
func RecordPagesPublished(count int) {
	if globalMetrics != nil {
		globalMetrics.pagesPublished.Add(float64(count))
	}
}

// RecordPublishError records a failed publish operation.
func RecordPublishError() {
	if globalMetrics != nil {
		globalMetrics.publishErrors.Inc()
	}
}

// =============================================================================
// Metrics Collector
// =============================================================================

// Collector exposes the metrics for use in custom registrations.
// This allows inspecting renderer metrics alongside other application
// metrics.
type Collector struct {
	rendersTotal     *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	renderErrors     *prometheus.CounterVec
	rendersInFlight  prometheus.Gauge
	commentsRendered prometheus.Counter
	pagesPublished   prometheus.Counter
	publishErrors    prometheus.Counter
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		rendersTotal:     globalMetrics.rendersTotal,
		renderDuration:   globalMetrics.renderDuration,
		renderErrors:     globalMetrics.renderErrors,
		rendersInFlight:  globalMetrics.rendersInFlight,
		commentsRendered: globalMetrics.commentsRendered,
		pagesPublished:   globalMetrics.pagesPublished,
		publishErrors:    globalMetrics.publishErrors,
	}
}
