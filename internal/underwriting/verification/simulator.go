// Package verification simulates the credit bureau and motor vehicle
// registry integrations. Real implementations would be authenticated HTTP
// calls with retry; the adapter surface is shaped so one can be swapped in
// without touching the rule engine or scorer.
package verification

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	SourceCreditBureau = "Experian (Simulated)"
	SourceDMV          = "DMV (Simulated)"

	// Bureau scores drift from self-reported ones by at most this much.
	creditVariance = 20

	creditScoreMin = 300
	creditScoreMax = 850
)

// CreditOutcome is the result of a credit bureau check. Verification never
// fails the pipeline; on degradation Verified is false and ActualScore echoes
// the self-reported value.
type CreditOutcome struct {
	Verified        bool      `json:"verified"`
	ReportedScore   int       `json:"reported_score"`
	ActualScore     int       `json:"actual_score"`
	ScoreDifference int       `json:"score_difference"`
	Source          string    `json:"source,omitempty"`
	Note            string    `json:"note,omitempty"`
	VerifiedAt      time.Time `json:"verification_date"`
}

// DrivingOutcome is the result of a motor vehicle registry lookup.
type DrivingOutcome struct {
	Available            bool   `json:"data_available"`
	AdditionalViolations int    `json:"additional_violations"`
	LicenseStatus        string `json:"license_status,omitempty"`
	Source               string `json:"source,omitempty"`
	Note                 string `json:"note,omitempty"`
}

// Evidence aggregates the per-request verification results. It is owned by
// the request pipeline and never persisted.
type Evidence struct {
	Credit    CreditOutcome
	Driving   *DrivingOutcome
	Sources   []string
	FetchedAt time.Time
}

// VerifiedCreditScore returns the bureau score when verification succeeded,
// otherwise the given fallback.
func (e *Evidence) VerifiedCreditScore(fallback int) int {
	if e != nil && e.Credit.Verified {
		return e.Credit.ActualScore
	}
	return fallback
}

// Simulator stands in for the external data vendors. Randomness and latency
// are injectable for reproducible tests.
type Simulator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	now     func() time.Time
	latency time.Duration

	failCredit  bool
	failDriving bool
}

type Option func(*Simulator)

// WithRand fixes the random source, making perturbations reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) { s.rng = rng }
}

// WithClock fixes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithLatency sets the simulated network delay per call.
func WithLatency(d time.Duration) Option {
	return func(s *Simulator) { s.latency = d }
}

// WithCreditFailure forces the bureau call to degrade. Test hook.
func WithCreditFailure() Option {
	return func(s *Simulator) { s.failCredit = true }
}

// WithDrivingFailure forces the registry call to degrade. Test hook.
func WithDrivingFailure() Option {
	return func(s *Simulator) { s.failDriving = true }
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		latency: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VerifyCredit simulates a bureau check: a bounded perturbation of the
// reported score, clamped to the valid range. It never returns an error; any
// failure (including context expiry) degrades to the self-reported score.
func (s *Simulator) VerifyCredit(ctx context.Context, applicantID string, reportedScore int) CreditOutcome {
	if s.failCredit || !s.sleep(ctx) {
		return CreditOutcome{
			Verified:      false,
			ReportedScore: reportedScore,
			ActualScore:   reportedScore,
			Note:          "credit verification unavailable; using self-reported score",
			VerifiedAt:    s.now(),
		}
	}

	actual := clamp(reportedScore+s.variance(), creditScoreMin, creditScoreMax)
	diff := actual - reportedScore
	if diff < 0 {
		diff = -diff
	}
	return CreditOutcome{
		Verified:        true,
		ReportedScore:   reportedScore,
		ActualScore:     actual,
		ScoreDifference: diff,
		Source:          SourceCreditBureau,
		VerifiedAt:      s.now(),
	}
}

// FetchDrivingSignals simulates a registry lookup returning auxiliary
// violation counts. Only meaningful for auto applications.
func (s *Simulator) FetchDrivingSignals(ctx context.Context, applicantID string) DrivingOutcome {
	if s.failDriving || !s.sleep(ctx) {
		return DrivingOutcome{
			Available: false,
			Note:      "driving record unavailable",
		}
	}

	return DrivingOutcome{
		Available:            true,
		AdditionalViolations: s.intn(2),
		LicenseStatus:        "valid",
		Source:               SourceDMV,
	}
}

// sleep simulates network delay, reporting false when the context expires
// first so callers can fall back to self-reported data.
func (s *Simulator) sleep(ctx context.Context) bool {
	if s.latency <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *Simulator) variance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(2*creditVariance) - creditVariance
}

func (s *Simulator) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
