package observability

import (
	"errors"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Steps      *prometheus.CounterVec
	Outcomes   *prometheus.CounterVec
	TapeGrowth *prometheus.CounterVec
	RunLength  *prometheus.HistogramVec
}

// NewMetrics builds unregistered collectors under the given namespace ("turing" when empty).
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "turing"
	}
	return &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of successful transitions",
			},
			[]string{"machine"},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Run and step results other than advanced, by kind",
			},
			[]string{"machine", "kind"},
		),
		TapeGrowth: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tape_growth_cells_total",
				Help:      "Cells added to tapes, by side",
			},
			[]string{"machine", "side"},
		),
		RunLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_steps",
				Help:      "Transitions performed when a machine halted or got stuck",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"machine"},
		),
	}
}

// Collectors lists every collector.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Steps, m.Outcomes, m.TapeGrowth, m.RunLength}
}

// Register adds the collectors to reg. Already registered collectors are tolerated.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Machine).Inc()
		},
		OnOutcome: func(e *domain.OutcomeEvent) {
			m.Outcomes.WithLabelValues(e.Machine, string(e.Outcome.Kind)).Inc()
			if e.Outcome.Terminal() {
				m.RunLength.WithLabelValues(e.Machine).Observe(float64(e.Outcome.Steps))
			}
		},
		OnTapeGrow: func(e *domain.GrowthEvent) {
			m.TapeGrowth.WithLabelValues(e.Machine, string(e.Side)).Add(float64(e.Cells))
		},
	}
}
