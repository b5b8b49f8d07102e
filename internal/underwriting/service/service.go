// Package service orchestrates the underwriting pipeline: validation,
// external verification, rule evaluation, classification, scoring, and
// decision composition.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"underwriter/internal/pii"
	"underwriter/internal/underwriting/classifier"
	"underwriter/internal/underwriting/decision"
	"underwriter/internal/underwriting/metrics"
	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/rules"
	"underwriter/internal/underwriting/scoring"
	"underwriter/internal/underwriting/verification"
)

// Coverage amounts at or above this normalize to a feature value of 1.0.
const coverageNormalizer = 100000

// Verifier fetches external evidence for an application. Calls degrade
// rather than fail: an unreachable vendor yields unverified outcomes.
type Verifier interface {
	VerifyCredit(ctx context.Context, applicantID string, reportedScore int) verification.CreditOutcome
	FetchDrivingSignals(ctx context.Context, applicantID string) verification.DrivingOutcome
}

// Classifier produces the trained-model risk signal. *classifier.Model
// satisfies it; tests substitute fixed predictions.
type Classifier interface {
	Predict(f classifier.Features) classifier.Prediction
}

// Service evaluates applications end to end. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	verifier   Verifier
	classifier Classifier

	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	verificationTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock fixes the timestamp source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithVerificationTimeout bounds the external evidence-gathering phase.
func WithVerificationTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.verificationTimeout = d
	}
}

func New(verifier Verifier, cls Classifier, opts ...Option) (*Service, error) {
	if verifier == nil {
		return nil, errors.New("verifier is required")
	}
	if cls == nil {
		return nil, errors.New("classifier is required")
	}

	svc := &Service{
		verifier:            verifier,
		classifier:          cls,
		now:                 time.Now,
		verificationTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Result is the full evaluation output: the decision plus the intermediate
// signals the report renderer and auditing need.
type Result struct {
	Decision   *models.Decision
	Profile    *models.ApplicantProfile
	Rules      *rules.Evaluation
	Prediction classifier.Prediction
}

// Evaluate runs one application through the full pipeline. The returned
// error is a *models.ValidationError for malformed submissions; evaluation
// itself cannot fail once the profile is constructed.
func (s *Service) Evaluate(ctx context.Context, app *models.Application) (*Result, error) {
	start := s.now()

	app.Normalize()
	profile, err := app.Validate()
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "application rejected by validation",
				"applicant", pii.Hash(app.ApplicantID),
				"error", err,
			)
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "processing application",
			"applicant", pii.Hash(profile.ApplicantID),
			"name", pii.MaskName(profile.Name),
			"insurance_type", profile.InsuranceType,
		)
	}

	evidence := s.gatherEvidence(ctx, profile)
	eval := rules.Evaluate(profile, evidence)
	pred := s.classifier.Predict(features(profile))
	score := scoring.Score(profile, &eval, pred)

	modelVersion := ""
	if pred.Available {
		modelVersion = classifier.Version
	}

	dec := decision.Compose(decision.Input{
		Profile:         profile,
		Score:           score,
		Rules:           &eval,
		CreditVerified:  evidence.Credit.Verified,
		ExternalSources: evidence.Sources,
		ModelVersion:    modelVersion,
		EvaluatedAt:     s.now(),
	})

	s.metrics.ObserveRiskScore(score)
	s.metrics.IncrementOutcome(string(dec.Decision), string(profile.InsuranceType))
	s.metrics.ObserveEvaluateLatency(s.now().Sub(start))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "underwriting completed",
			"applicant", pii.Hash(profile.ApplicantID),
			"decision", dec.Decision,
			"risk_level", dec.RiskLevel,
			"risk_score", dec.RiskScore,
		)
	}
	return &Result{
		Decision:   dec,
		Profile:    profile,
		Rules:      &eval,
		Prediction: pred,
	}, nil
}

// BatchItem is one positional result of a batch evaluation: a result or the
// error that prevented one.
type BatchItem struct {
	Result *Result
	Err    error
}

// EvaluateBatch evaluates applications in submission order. One malformed
// application never aborts the batch; its slot carries the error instead.
func (s *Service) EvaluateBatch(ctx context.Context, apps []models.Application) []BatchItem {
	items := make([]BatchItem, len(apps))
	for i := range apps {
		if err := ctx.Err(); err != nil {
			items[i] = BatchItem{Err: err}
			continue
		}
		res, err := s.Evaluate(ctx, &apps[i])
		items[i] = BatchItem{Result: res, Err: err}
	}
	return items
}

// features maps a validated profile onto the classifier input vector. The
// self-reported credit score is used: the classifier saw self-reported
// scores in training, so verified scores would shift its input distribution.
func features(p *models.ApplicantProfile) classifier.Features {
	coverage := p.CoverageAmount / coverageNormalizer
	if coverage > 1 {
		coverage = 1
	}
	return classifier.Features{
		CreditScore:   float64(p.CreditScore),
		Age:           float64(p.Age),
		ClaimsCount:   float64(p.ClaimsHistory.ClaimsLast3Years),
		CoverageRatio: coverage,
		YearsLicensed: float64(p.YearsLicensed()),
	}
}
