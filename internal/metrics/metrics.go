// Package metrics counts primitive operations made by the scenario workers.
//
// Each Recorder owns a private Prometheus registry so that concurrent runs
// (and tests) never share counters. Workers call Observe between primitive
// calls, never from inside a primitive's critical section.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts operations by primitive, operation and outcome.
//
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewRecorder creates a Recorder whose metrics are prefixed by namespace.
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		registry: reg,
		operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Primitive operations performed by scenario workers",
		}, []string{"primitive", "op", "outcome"}),
	}
}

// Observe counts one operation.
func (r *Recorder) Observe(primitive, op, outcome string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(primitive, op, outcome).Inc()
}

// Registry returns the registry holding the Recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Total is one counter value, keyed by its labels.
type Total struct {
	Primitive string
	Op        string
	Outcome   string
	Value     float64
}

// String formats the labels as "primitive/op/outcome".
func (t Total) String() string {
	return strings.Join([]string{t.Primitive, t.Op, t.Outcome}, "/")
}

// Totals gathers every counter, sorted by labels.
func (r *Recorder) Totals() ([]Total, error) {
	if r == nil {
		return nil, nil
	}

	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Total
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var t Total
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "primitive":
					t.Primitive = lp.GetValue()
				case "op":
					t.Op = lp.GetValue()
				case "outcome":
					t.Outcome = lp.GetValue()
				}
			}
			t.Value = m.GetCounter().GetValue()
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}
