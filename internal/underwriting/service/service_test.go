package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"underwriter/internal/underwriting/classifier"
	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/verification"
)

// stubVerifier returns fixed outcomes without latency, keeping pipeline
// tests deterministic.
type stubVerifier struct {
	credit  verification.CreditOutcome
	driving verification.DrivingOutcome

	creditCalls  int
	drivingCalls int
}

func (v *stubVerifier) VerifyCredit(_ context.Context, _ string, reported int) verification.CreditOutcome {
	v.creditCalls++
	out := v.credit
	if out.ActualScore == 0 {
		out.ActualScore = reported
		out.ReportedScore = reported
	}
	return out
}

func (v *stubVerifier) FetchDrivingSignals(context.Context, string) verification.DrivingOutcome {
	v.drivingCalls++
	return v.driving
}

// stubClassifier returns a fixed prediction.
type stubClassifier struct {
	pred classifier.Prediction
}

func (c *stubClassifier) Predict(classifier.Features) classifier.Prediction {
	return c.pred
}

type ServiceSuite struct {
	suite.Suite

	verifier *stubVerifier
	svc      *Service
}

func (s *ServiceSuite) SetupTest() {
	s.verifier = &stubVerifier{
		credit: verification.CreditOutcome{
			Verified: true,
			Source:   verification.SourceCreditBureau,
		},
		driving: verification.DrivingOutcome{
			Available:     true,
			LicenseStatus: "valid",
			Source:        verification.SourceDMV,
		},
	}

	svc, err := New(
		s.verifier,
		&stubClassifier{pred: classifier.Prediction{Available: true, Bucket: classifier.BucketApprove, Confidence: 0.9}},
		WithClock(func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }),
	)
	s.Require().NoError(err)
	s.svc = svc
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func cleanAutoApplication() models.Application {
	return models.Application{
		ApplicantID:      "APP-2025-001",
		Name:             "John Smith",
		Age:              35,
		CreditScore:      750,
		AnnualIncome:     85000,
		EmploymentStatus: "employed",
		InsuranceType:    "auto",
		CoverageAmount:   100000,
		ClaimsHistory:    &models.ClaimsHistory{TotalClaims: 1, ClaimsLast3Years: 0, TotalClaimedAmount: 3200},
		DrivingRecord: &models.DrivingRecord{
			YearsLicensed:        15,
			AccidentsLast5Years:  0,
			ViolationsLast3Years: 1,
		},
	}
}

// Credit 750, no claims, age 35, clean record: low band, approved.
func (s *ServiceSuite) TestCleanAutoProfileApproves() {
	app := cleanAutoApplication()
	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Require().NoError(err)
	dec := res.Decision

	s.Equal(models.DecisionApproved, dec.Decision)
	s.Equal(models.RiskLow, dec.RiskLevel)
	s.True(dec.Approved)
	s.Require().NotNil(dec.Premium)
	s.True(dec.CreditVerified)
	s.Equal([]string{verification.SourceCreditBureau, verification.SourceDMV}, dec.ExternalSources)
	s.Equal(classifier.Version, dec.ModelVersion)
	s.Equal(1, s.verifier.creditCalls)
	s.Equal(1, s.verifier.drivingCalls)
}

// Credit 580, 3 claims, age 22, messy record: never plain approved.
func (s *ServiceSuite) TestRiskyYoungDriverNeverPlainApproved() {
	app := cleanAutoApplication()
	app.CreditScore = 580
	app.Age = 22
	app.ClaimsHistory.ClaimsLast3Years = 3
	app.DrivingRecord = &models.DrivingRecord{
		YearsLicensed:        3,
		AccidentsLast5Years:  2,
		ViolationsLast3Years: 4,
	}
	// Bureau confirms the poor score so the credit rules bite.
	s.verifier.credit = verification.CreditOutcome{
		Verified: true, ActualScore: 580, Source: verification.SourceCreditBureau,
	}

	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Require().NoError(err)
	dec := res.Decision

	s.NotEqual(models.DecisionApproved, dec.Decision)
	s.Contains([]models.DecisionStatus{
		models.DecisionApprovedWithConds,
		models.DecisionReferToManualReview,
		models.DecisionDeclined,
	}, dec.Decision)
	s.GreaterOrEqual(dec.RiskScore, 50.0)
}

// DUI declines even an otherwise pristine profile.
func (s *ServiceSuite) TestDUIHistoryDeclines() {
	app := cleanAutoApplication()
	app.DrivingRecord.DUIHistory = true

	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Require().NoError(err)
	dec := res.Decision

	s.Equal(models.DecisionDeclined, dec.Decision)
	s.False(dec.Approved)
	s.Nil(dec.Premium)
	s.Contains(dec.DecisionReasons, "DUI/DWI history present")
	// Declines carry no verification detail.
	s.False(dec.CreditVerified)
	s.Empty(dec.ExternalSources)
}

// Home lines skip the registry and carry only the bureau source, even when
// the property itself is a mess.
func (s *ServiceSuite) TestHomeProfileSkipsDrivingVerification() {
	app := cleanAutoApplication()
	app.InsuranceType = "home"
	app.CreditScore = 720
	app.DrivingRecord = nil
	app.PropertyInfo = &models.PropertyInfo{
		PropertyAge:         60,
		ConstructionType:    models.ConstructionWood,
		SecuritySystem:      false,
		FireProtectionClass: 9,
		FloodZone:           true,
	}
	s.verifier.credit = verification.CreditOutcome{
		Verified: true, ActualScore: 720, Source: verification.SourceCreditBureau,
	}

	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Require().NoError(err)
	dec := res.Decision

	s.Equal(0, s.verifier.drivingCalls)
	s.Equal([]string{verification.SourceCreditBureau}, dec.ExternalSources)
	// Property risk factors feed the score even though the profile stays in
	// an approvable band.
	s.Greater(dec.RiskScore, 20.0)
}

// Smoker on a health application surfaces in the premium path but still
// approves when the rest of the profile is clean.
func (s *ServiceSuite) TestSmokerHealthProfile() {
	smoker := true
	noConds := false
	app := cleanAutoApplication()
	app.InsuranceType = "health"
	app.CreditScore = 700
	app.DrivingRecord = nil
	app.Smoker = &smoker
	app.PreExistingConditions = &noConds

	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Require().NoError(err)
	dec := res.Decision

	s.Contains([]models.DecisionStatus{
		models.DecisionApproved,
		models.DecisionApprovedWithConds,
	}, dec.Decision)
	s.True(dec.Approved)
}

func (s *ServiceSuite) TestValidationErrorsSurface() {
	app := cleanAutoApplication()
	app.Age = 15
	app.CreditScore = 200

	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Nil(res)

	var vErr *models.ValidationError
	s.Require().ErrorAs(err, &vErr)
	s.Len(vErr.Violations, 2)
	s.Equal(0, s.verifier.creditCalls, "invalid applications never reach the vendors")
}

// Same input, same decision: the pipeline is deterministic once the
// verifier and classifier are fixed.
func (s *ServiceSuite) TestEvaluateIsDeterministic() {
	a := cleanAutoApplication()
	b := cleanAutoApplication()

	first, err := s.svc.Evaluate(context.Background(), &a)
	s.Require().NoError(err)
	second, err := s.svc.Evaluate(context.Background(), &b)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestUnverifiedCreditFallsBackToSelfReported() {
	app := cleanAutoApplication()
	app.CreditScore = 545 // fails hard if taken at face value
	s.verifier.credit = verification.CreditOutcome{Verified: false}

	res, err := s.svc.Evaluate(context.Background(), &app)
	s.Require().NoError(err)
	dec := res.Decision

	s.Equal(models.DecisionDeclined, dec.Decision)
	s.False(dec.CreditVerified)
}

func (s *ServiceSuite) TestEvaluateBatchKeepsOrderAndIsolatesFailures() {
	good := cleanAutoApplication()
	bad := cleanAutoApplication()
	bad.ApplicantID = ""
	bad.Age = 12
	alsoGood := cleanAutoApplication()
	alsoGood.ApplicantID = "APP-2025-002"

	items := s.svc.EvaluateBatch(context.Background(), []models.Application{good, bad, alsoGood})
	s.Require().Len(items, 3)

	s.NoError(items[0].Err)
	s.Equal("APP-2025-001", items[0].Result.Decision.ApplicationID)

	s.Error(items[1].Err)
	s.Nil(items[1].Result)

	s.NoError(items[2].Err)
	s.Equal("APP-2025-002", items[2].Result.Decision.ApplicationID)
}

func (s *ServiceSuite) TestEvaluateBatchStopsOnCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app := cleanAutoApplication()
	items := s.svc.EvaluateBatch(ctx, []models.Application{app})
	s.Require().Len(items, 1)
	s.ErrorIs(items[0].Err, context.Canceled)
}

func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := New(nil, &stubClassifier{}); err == nil {
		t.Fatal("expected error for nil verifier")
	}
	if _, err := New(&stubVerifier{}, nil); err == nil {
		t.Fatal("expected error for nil classifier")
	}
}
