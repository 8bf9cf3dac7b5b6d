package billing

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAccepted          = "accepted"
	outcomeInvalid           = "invalid"
	outcomeProductNotFound   = "product_not_found"
	outcomeInsufficientStock = "insufficient_stock"
	outcomePersistence       = "persistence_failure"
)

// Metrics records billing outcomes.
type Metrics struct {
	submitted *prometheus.CounterVec
	lines     prometheus.Counter
	duration  *prometheus.HistogramVec
}

// NewMetrics registers the billing collectors with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_bills_submitted_total",
			Help: "Bill submissions by outcome.",
		}, []string{"outcome"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_bill_lines_total",
			Help: "Bill lines committed.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "marketplace_bill_submit_duration_seconds",
			Help:    "SubmitBill latency including lock waits.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}),
	}
	registerer.MustRegister(m.submitted, m.lines, m.duration)
	return m
}

func (m *Metrics) observe(outcome string, lines int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submitted.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == outcomeAccepted {
		m.lines.Add(float64(lines))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeAccepted
	case errors.Is(err, ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, ErrProductNotFound):
		return outcomeProductNotFound
	case errors.Is(err, ErrInsufficientStock):
		return outcomeInsufficientStock
	default:
		return outcomePersistence
	}
}
