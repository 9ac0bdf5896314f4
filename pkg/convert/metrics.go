package convert

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts converted primitives per kind and outcome
type Metrics struct {
	Primitives *prometheus.CounterVec
}

// NewMetrics registers the conversion metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Primitives: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "easyeda2kicad_primitives_total",
				Help: "Total number of EasyEDA primitives processed, by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}

// Observe records one result. A nil receiver is a no-op.
func (m *Metrics) Observe(r Result) {
	if m == nil {
		return
	}
	m.Primitives.WithLabelValues(strings.ToLower(string(r.Kind)), r.Outcome.String()).Inc()
}
