package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector manages Prometheus metrics for the client. All methods are
// nil-safe so callers can run without metrics entirely.
type Collector struct {
	serviceName string

	actionsTotal       *prometheus.CounterVec
	actionDuration     *prometheus.HistogramVec
	engagementErrors   *prometheus.CounterVec
	engagementDuration prometheus.Histogram
	serviceInfo        *prometheus.GaugeVec
}

// NewCollector creates a metrics collector registered on its own registry.
func NewCollector(serviceName, version, commit string) (*Collector, *prometheus.Registry) {
	// Sanitize service name for Prometheus (replace hyphens with underscores)
	sanitized := strings.ReplaceAll(serviceName, "-", "_")

	c := &Collector{serviceName: sanitized}

	c.actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: sanitized + "_actions_total",
			Help: "Total number of dispatched ledger actions",
		},
		[]string{"action", "status"},
	)

	c.actionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    sanitized + "_action_duration_seconds",
			Help:    "Time from submission to confirmation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	c.engagementErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: sanitized + "_engagement_fetch_errors_total",
			Help: "Engagement metric fetches that failed",
		},
		[]string{"metric"},
	)

	c.engagementDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    sanitized + "_engagement_sync_duration_seconds",
			Help:    "Duration of full engagement sync passes",
			Buckets: prometheus.DefBuckets,
		},
	)

	c.serviceInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: sanitized + "_service_info",
			Help: "Service information",
		},
		[]string{"version", "commit"},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(c.actionsTotal, c.actionDuration, c.engagementErrors, c.engagementDuration, c.serviceInfo)
	c.serviceInfo.WithLabelValues(version, commit).Set(1)

	return c, registry
}

// RecordAction counts a dispatched action outcome.
func (c *Collector) RecordAction(action, status string) {
	if c == nil {
		return
	}
	c.actionsTotal.WithLabelValues(action, status).Inc()
}

// ObserveActionDuration records how long an action took to confirm.
func (c *Collector) ObserveActionDuration(action string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.actionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// RecordEngagementError counts a failed engagement metric fetch.
func (c *Collector) RecordEngagementError(metric string) {
	if c == nil {
		return
	}
	c.engagementErrors.WithLabelValues(metric).Inc()
}

// ObserveSyncDuration records the duration of a sync pass.
func (c *Collector) ObserveSyncDuration(elapsed time.Duration) {
	if c == nil {
		return
	}
	c.engagementDuration.Observe(elapsed.Seconds())
}
