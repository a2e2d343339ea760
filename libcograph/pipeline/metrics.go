package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work done by generation runs.  A nil *Metrics records nothing.
type Metrics struct {
	Structures prometheus.Counter
	Graphs     prometheus.Counter
	Batches    prometheus.Counter
}

// NewMetrics creates the pipeline counters and registers them with reg (if non-nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Structures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cograph",
			Name:      "structures_enumerated_total",
			Help:      "The total number of canonical cotree structures enumerated.",
		}),
		Graphs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cograph",
			Name:      "graphs_encoded_total",
			Help:      "The total number of graph6 lines produced.",
		}),
		Batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cograph",
			Name:      "batches_total",
			Help:      "The total number of scratch batches encoded.",
		}),
	}
}

func (m *Metrics) structureEmitted() {
	if m != nil {
		m.Structures.Inc()
	}
}

func (m *Metrics) graphsEncoded(count int) {
	if m != nil {
		m.Graphs.Add(float64(count))
	}
}

func (m *Metrics) batchDone() {
	if m != nil {
		m.Batches.Inc()
	}
}
