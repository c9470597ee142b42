// Package metrics exposes Prometheus instrumentation for simulation runs.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the simulator.
type Registry struct {
	RunsTotal        *prometheus.CounterVec   // by model
	StepsTotal       *prometheus.CounterVec   // by model
	StepDuration     *prometheus.HistogramVec // by model
	Compartment      *prometheus.GaugeVec     // by model, state
	TransitionsTotal *prometheus.CounterVec   // by model, from, to
	ModerationsTotal *prometheus.CounterVec   // by model, outcome

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.RunsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seiz_runs_total",
			Help: "Total number of simulation runs started",
		},
		[]string{"model"},
	)
	r.StepsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seiz_steps_total",
			Help: "Total number of simulation steps executed",
		},
		[]string{"model"},
	)
	r.StepDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seiz_step_duration_seconds",
			Help:    "Simulation step duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"model"},
	)
	r.Compartment = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seiz_compartment_nodes",
			Help: "Current number of nodes per compartment",
		},
		[]string{"model", "state"},
	)
	r.TransitionsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seiz_transitions_total",
			Help: "Total number of node state transitions",
		},
		[]string{"model", "from", "to"},
	)
	r.ModerationsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seiz_moderations_total",
			Help: "Total number of moderation-driven transitions",
		},
		[]string{"model", "outcome"},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry, for
// wiring into an HTTP handler.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRun records the start of a simulation run.
func (r *Registry) RecordRun(model string) {
	r.RunsTotal.WithLabelValues(model).Inc()
}

// RecordStep records one executed step and its duration.
func (r *Registry) RecordStep(model string, duration time.Duration) {
	r.StepsTotal.WithLabelValues(model).Inc()
	r.StepDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// SetCompartments updates the per-compartment node gauges.
func (r *Registry) SetCompartments(model string, s, e, i, z int) {
	r.Compartment.WithLabelValues(model, "S").Set(float64(s))
	r.Compartment.WithLabelValues(model, "E").Set(float64(e))
	r.Compartment.WithLabelValues(model, "I").Set(float64(i))
	r.Compartment.WithLabelValues(model, "Z").Set(float64(z))
}

// AddTransitions records n transitions along one state edge.
func (r *Registry) AddTransitions(model, from, to string, n int) {
	if n == 0 {
		return
	}
	r.TransitionsTotal.WithLabelValues(model, from, to).Add(float64(n))
}

// AddModerations records n moderation outcomes ("success" or "demoted").
func (r *Registry) AddModerations(model, outcome string, n int) {
	if n == 0 {
		return
	}
	r.ModerationsTotal.WithLabelValues(model, outcome).Add(float64(n))
}
