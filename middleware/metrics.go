package middleware

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/castage"
)

const (
	outcomeOK         = "ok"
	outcomeInvalid    = "invalid"
	outcomeBadRequest = "bad_request"
)

// Metrics counts validated requests by outcome and casting errors by code.
// A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the counters with reg (the default registerer when
// nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "castage_validation_requests_total",
				Help: "Requests seen by the validation middleware, by outcome",
			},
			[]string{"outcome"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "castage_validation_failures_total",
				Help: "Casting errors reported to clients, by error code",
			},
			[]string{"code"},
		),
	}
	reg.MustRegister(m.requests, m.failures)
	return m
}

func (m *Metrics) request(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) failed(errs castage.Errors) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcomeInvalid).Inc()
	for _, e := range errs {
		m.failures.WithLabelValues(string(e.Code)).Inc()
	}
}
