package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts checkout attempts by outcome so failed payment vs
// failed order placement can be told apart on a dashboard.
type CheckoutMetrics struct {
	Attempts *prometheus.CounterVec
	Duration prometheus.Histogram
}

const (
	OutcomeCompleted         = "completed"
	OutcomeValidationFailed  = "validation_failed"
	OutcomeGatewayFailed     = "gateway_failed"
	OutcomeBackendFailed     = "backend_failed"
	OutcomeDuplicateRejected = "duplicate_rejected"
)

func NewCheckoutMetrics(reg prometheus.Registerer, service string) *CheckoutMetrics {
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: service,
		Subsystem: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout submissions by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: service,
		Subsystem: "checkout",
		Name:      "attempt_duration_seconds",
		Help:      "Wall time of a full checkout attempt.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	reg.MustRegister(attempts, duration)
	return &CheckoutMetrics{Attempts: attempts, Duration: duration}
}

func (m *CheckoutMetrics) Record(outcome string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(outcome).Inc()
}

func (m *CheckoutMetrics) Observe(seconds float64) {
	if m == nil {
		return
	}
	m.Duration.Observe(seconds)
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
