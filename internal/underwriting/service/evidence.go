package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/verification"
)

// gatherEvidence runs the external verification calls in parallel under a
// shared deadline. Vendors degrade instead of erroring, so the group always
// completes; a timed-out call simply comes back unverified.
func (s *Service) gatherEvidence(ctx context.Context, profile *models.ApplicantProfile) *verification.Evidence {
	ctx, cancel := context.WithTimeout(ctx, s.verificationTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	evidence := &verification.Evidence{
		FetchedAt: s.now(),
	}

	g.Go(func() error {
		start := time.Now()
		evidence.Credit = s.verifier.VerifyCredit(ctx, profile.ApplicantID, profile.CreditScore)
		s.metrics.ObserveVerificationLatency("credit", time.Since(start))
		return nil
	})

	// Driving records only exist for auto lines.
	if profile.InsuranceType == models.InsuranceTypeAuto {
		g.Go(func() error {
			start := time.Now()
			driving := s.verifier.FetchDrivingSignals(ctx, profile.ApplicantID)
			s.metrics.ObserveVerificationLatency("driving", time.Since(start))
			evidence.Driving = &driving
			return nil
		})
	}

	// Fetchers never return errors; they degrade in place.
	_ = g.Wait()

	// Sources are assembled after the group finishes so ordering stays
	// deterministic: bureau first, registry second.
	if evidence.Credit.Source != "" {
		evidence.Sources = append(evidence.Sources, evidence.Credit.Source)
	}
	if evidence.Driving != nil && evidence.Driving.Source != "" {
		evidence.Sources = append(evidence.Sources, evidence.Driving.Source)
	}
	return evidence
}
