package updater

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the optional observability surface for an Engine. It is
// nil-safe: an Engine constructed without metrics behaves identically,
// just without the side-channel counters.
type Metrics struct {
	decisions        *prometheus.CounterVec
	observedFailures prometheus.Gauge
}

// NewMetrics registers an Engine's counters against reg and returns a
// Metrics ready to pass to NewEngine. Callers that don't want metrics can
// simply pass nil to NewEngine instead of calling this.
func NewMetrics(reg prometheus.Registerer, instanceID string) (*Metrics, error) {
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "updater",
		Subsystem:   "instance",
		Name:        "decisions_total",
		Help:        "Count of Evaluate results by decision, per instance.",
		ConstLabels: prometheus.Labels{"instance": instanceID},
	}, []string{"result"})

	observedFailures := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "updater",
		Subsystem:   "instance",
		Name:        "observed_failures",
		Help:        "Current value of the per-instance observed failure counter.",
		ConstLabels: prometheus.Labels{"instance": instanceID},
	})

	for _, c := range []prometheus.Collector{decisions, observedFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{decisions: decisions, observedFailures: observedFailures}, nil
}

func (m *Metrics) recordDecision(r Result) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(r.String()).Inc()
}

func (m *Metrics) setObservedFailures(n uint32) {
	if m == nil {
		return
	}
	m.observedFailures.Set(float64(n))
}
