package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// coordination monitor.
type Metrics struct {
	ChannelsParsed   prometheus.Gauge
	ValidationErrors prometheus.Counter
	KnownExceptions  prometheus.Counter
	ChannelsAdded    prometheus.Counter
	ChannelsRemoved  prometheus.Counter
	AvailablePairs   prometheus.Gauge
	MonitorRunning   prometheus.Gauge

	FetchDuration prometheus.Histogram
	FetchErrors   prometheus.Counter
	NotifyErrors  prometheus.Counter
}

// NewMetrics creates and registers all monitor metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ChannelsParsed,
		m.ValidationErrors,
		m.KnownExceptions,
		m.ChannelsAdded,
		m.ChannelsRemoved,
		m.AvailablePairs,
		m.MonitorRunning,
		m.FetchDuration,
		m.FetchErrors,
		m.NotifyErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ChannelsParsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "repeater_qa",
			Name:      "channels_parsed",
			Help:      "Analog FM channels in the latest extract snapshot.",
		}),
		ValidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repeater_qa",
			Name:      "validation_errors_total",
			Help:      "Band-plan validation failures across all runs.",
		}),
		KnownExceptions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repeater_qa",
			Name:      "known_exceptions_total",
			Help:      "Failures suppressed by the exception allow-list.",
		}),
		ChannelsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repeater_qa",
			Name:      "channels_added_total",
			Help:      "Coordinations that appeared between snapshots.",
		}),
		ChannelsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repeater_qa",
			Name:      "channels_removed_total",
			Help:      "Coordinations that disappeared between snapshots.",
		}),
		AvailablePairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "repeater_qa",
			Name:      "available_pairs",
			Help:      "Theoretical channel pairs with no coordination.",
		}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "repeater_qa",
			Name:      "monitor_running",
			Help:      "1 when the monitor loop is active, 0 when shut down.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "repeater_qa",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of one extract fetch and parse.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repeater_qa",
			Name:      "fetch_errors_total",
			Help:      "Failed extract fetches.",
		}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repeater_qa",
			Name:      "notify_errors_total",
			Help:      "Failed change-report publishes.",
		}),
	}
}
