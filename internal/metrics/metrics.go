// Package metrics exposes Prometheus counters for committed workouts and
// coaching-feedback outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "musclememo"

// Feedback outcomes.
const (
	OutcomeGenerated     = "generated"
	OutcomeFallbackNoKey = "fallback_no_key"
	OutcomeFallbackError = "fallback_error"
	OutcomeFallbackEmpty = "fallback_empty"
)

// Metrics holds the application collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	WorkoutsCommitted prometheus.Counter
	Feedback          *prometheus.CounterVec
	Sessions          prometheus.Gauge
}

// New creates a registry with Go runtime and process collectors plus the
// application counters.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newWithRegistry(reg)
}

// NewTest returns Metrics on a bare registry.
func NewTest() *Metrics {
	return newWithRegistry(prometheus.NewRegistry())
}

func newWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		WorkoutsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workouts_committed_total",
			Help:      "The total number of workouts committed to history",
		}),
		Feedback: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_total",
			Help:      "Coaching feedback requests by outcome",
		}, []string{"outcome"}),
		Sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_sessions",
			Help:      "Number of sessions currently in history",
		}),
	}
}

// Register adds extra collectors, such as a connection pool collector.
func (m *Metrics) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// FeedbackOutcome counts one feedback request.
func (m *Metrics) FeedbackOutcome(outcome string) {
	m.Feedback.WithLabelValues(outcome).Inc()
}

// WorkoutCommitted counts one commit.
func (m *Metrics) WorkoutCommitted() {
	m.WorkoutsCommitted.Inc()
}

// HistoryChanged records the current history size.
func (m *Metrics) HistoryChanged(historyLen int) {
	m.Sessions.Set(float64(historyLen))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
