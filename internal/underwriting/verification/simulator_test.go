package verification

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(opts ...Option) *Simulator {
	base := []Option{
		WithRand(rand.New(rand.NewSource(42))),
		WithLatency(0),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }),
	}
	return NewSimulator(append(base, opts...)...)
}

func TestVerifyCredit_BoundedPerturbation(t *testing.T) {
	s := newTestSimulator()
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		out := s.VerifyCredit(ctx, "APP-1", 700)
		require.True(t, out.Verified)
		assert.Equal(t, SourceCreditBureau, out.Source)
		assert.GreaterOrEqual(t, out.ActualScore, 680)
		assert.LessOrEqual(t, out.ActualScore, 720)
		assert.Equal(t, 700, out.ReportedScore)
	}
}

func TestVerifyCredit_ClampsToValidRange(t *testing.T) {
	s := newTestSimulator()
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		low := s.VerifyCredit(ctx, "APP-1", 300)
		assert.GreaterOrEqual(t, low.ActualScore, 300)

		high := s.VerifyCredit(ctx, "APP-1", 850)
		assert.LessOrEqual(t, high.ActualScore, 850)
	}
}

func TestVerifyCredit_DegradesOnFailure(t *testing.T) {
	s := newTestSimulator(WithCreditFailure())
	out := s.VerifyCredit(context.Background(), "APP-1", 640)

	assert.False(t, out.Verified)
	assert.Equal(t, 640, out.ActualScore)
	assert.Empty(t, out.Source)
	assert.NotEmpty(t, out.Note)
}

func TestVerifyCredit_DegradesOnContextExpiry(t *testing.T) {
	s := newTestSimulator(WithLatency(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := s.VerifyCredit(ctx, "APP-1", 640)
	assert.False(t, out.Verified)
	assert.Equal(t, 640, out.ActualScore)
}

func TestFetchDrivingSignals(t *testing.T) {
	s := newTestSimulator()
	out := s.FetchDrivingSignals(context.Background(), "APP-1")

	require.True(t, out.Available)
	assert.Equal(t, SourceDMV, out.Source)
	assert.Equal(t, "valid", out.LicenseStatus)
	assert.GreaterOrEqual(t, out.AdditionalViolations, 0)
	assert.LessOrEqual(t, out.AdditionalViolations, 1)
}

func TestFetchDrivingSignals_DegradesOnFailure(t *testing.T) {
	s := newTestSimulator(WithDrivingFailure())
	out := s.FetchDrivingSignals(context.Background(), "APP-1")

	assert.False(t, out.Available)
	assert.NotEmpty(t, out.Note)
}

func TestEvidence_VerifiedCreditScore(t *testing.T) {
	verified := &Evidence{Credit: CreditOutcome{Verified: true, ActualScore: 712}}
	assert.Equal(t, 712, verified.VerifiedCreditScore(700))

	degraded := &Evidence{Credit: CreditOutcome{Verified: false, ActualScore: 700}}
	assert.Equal(t, 700, degraded.VerifiedCreditScore(700))

	var nilEvidence *Evidence
	assert.Equal(t, 700, nilEvidence.VerifiedCreditScore(700))
}
