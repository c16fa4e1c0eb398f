package system

import (
	"time"

	"github.com/milk9111/blockpush/ecs"
	"github.com/milk9111/blockpush/physics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records collision solver statistics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	tickDuration prometheus.Histogram
	iterations   *prometheus.HistogramVec
	bodies       prometheus.Gauge
	events       *prometheus.CounterVec
}

// NewMetrics registers the solver collectors with reg. Labels are bounded:
// axis is x or y and kind is death or win.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "blockpush_collision_tick_duration_seconds",
			Help:    "Time spent resolving collisions in one tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
		}),
		iterations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blockpush_collision_iterations",
			Help:    "Bodies processed before an axis pass settled",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"axis"}),
		bodies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "blockpush_collision_bodies",
			Help: "Entities taking part in collision this tick",
		}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blockpush_game_events_total",
			Help: "Game events raised by the collision pass",
		}, []string{"kind"}),
	}
}

func (m *Metrics) observeTick(fn func()) {
	if m == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	m.tickDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeIterations(axis physics.Axis, n int) {
	if m == nil {
		return
	}
	m.iterations.WithLabelValues(axis.String()).Observe(float64(n))
}

func (m *Metrics) setBodies(n int) {
	if m == nil {
		return
	}
	m.bodies.Set(float64(n))
}

func (m *Metrics) countEvent(kind ecs.GameEventKind) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(string(kind)).Inc()
}
