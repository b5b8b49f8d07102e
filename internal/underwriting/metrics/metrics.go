package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the underwriting module. All methods
// are nil-safe so services can run without metrics wired.
type Metrics struct {
	// External verification latencies by source
	VerificationLatency *prometheus.HistogramVec

	// Decision outcomes by status and insurance type
	DecisionOutcome *prometheus.CounterVec

	// Distribution of computed risk scores
	RiskScore prometheus.Histogram

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all underwriting metrics registered.
func New() *Metrics {
	return &Metrics{
		VerificationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "underwriter_verification_duration_seconds",
			Help:    "Duration of external verification calls by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "credit", "driving"

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriter_decision_outcomes_total",
			Help: "Total underwriting outcomes by decision and insurance type",
		}, []string{"decision", "insurance_type"}),

		RiskScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "underwriter_risk_score",
			Help:    "Distribution of computed risk scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "underwriter_evaluate_duration_seconds",
			Help:    "Duration of full underwriting evaluation including verification",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveVerificationLatency records the duration of one external data call.
func (m *Metrics) ObserveVerificationLatency(source string, d time.Duration) {
	if m != nil {
		m.VerificationLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a finished decision.
func (m *Metrics) IncrementOutcome(decision, insuranceType string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(decision, insuranceType).Inc()
	}
}

// ObserveRiskScore records a computed risk score.
func (m *Metrics) ObserveRiskScore(score float64) {
	if m != nil {
		m.RiskScore.Observe(score)
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
