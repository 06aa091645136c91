package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests    *prometheus.CounterVec
	CounterCompletions *prometheus.CounterVec
	CounterRedemptions prometheus.Counter

	// gauges
	GaugeRequests      prometheus.Gauge
	GaugeStoreFallback prometheus.Gauge

	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("workout", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("workout", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterCompletions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workout_completions",
			Help:      "Workout completion requests by whether the day was credited",
		}, []string{"credited"}),
		CounterRedemptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reward_redemptions",
			Help:      "The total number of redeemed rewards",
		}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		GaugeStoreFallback: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "store_fallback",
			Help:      "1 when the configured store was unavailable and memory is used instead",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route"}),
	}
}

// ObserveCompletion counts one completion request.
func (m *Manager) ObserveCompletion(credited bool) {
	label := "false"
	if credited {
		label = "true"
	}
	m.CounterCompletions.WithLabelValues(label).Inc()
}

// SetStoreFallback records whether the volatile fallback store is in use.
func (m *Manager) SetStoreFallback(fallback bool) {
	if fallback {
		m.GaugeStoreFallback.Set(1)
		return
	}
	m.GaugeStoreFallback.Set(0)
}
