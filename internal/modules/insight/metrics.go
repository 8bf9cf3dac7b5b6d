package insight

import "github.com/prometheus/client_golang/prometheus"

const (
	sourceCache    = "cache"
	sourceLLM      = "llm"
	sourceRules    = "rules"
	sourceFallback = "fallback"
)

// Metrics counts insights by where their text came from.
type Metrics struct {
	generated *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_insights_generated_total",
			Help: "Insights served, by source (cache, llm, rules, fallback).",
		}, []string{"source"}),
	}
	registerer.MustRegister(m.generated)
	return m
}

func (m *Metrics) inc(source string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(source).Inc()
}
