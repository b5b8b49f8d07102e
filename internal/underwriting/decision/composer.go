// Package decision turns the scored, rule-evaluated application into the
// final underwriting verdict: status, reasons, conditions, exclusions, and
// premium.
package decision

import (
	"fmt"
	"time"

	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/rules"
	"underwriter/internal/underwriting/scoring"
	pstrings "underwriter/pkg/platform/strings"
)

// Scores above this inside the very-high band decline outright instead of
// going to manual review.
const hardDeclineScore = 85

// Input carries everything the composer needs. The composer itself is pure:
// same input, same decision.
type Input struct {
	Profile         *models.ApplicantProfile
	Score           float64
	Rules           *rules.Evaluation
	CreditVerified  bool
	ExternalSources []string
	ModelVersion    string
	EvaluatedAt     time.Time
}

// Compose maps the risk score and rule outcomes onto a decision. Auto-decline
// short-circuits everything else; otherwise the risk band drives status,
// conditions, and whether a premium is quoted.
func Compose(in Input) *models.Decision {
	if in.Rules.AutoDecline {
		return declined(in)
	}

	level := scoring.Level(in.Score)

	d := &models.Decision{
		ApplicationID:   in.Profile.ApplicantID,
		RiskLevel:       level,
		RiskScore:       in.Score,
		CreditVerified:  in.CreditVerified,
		ExternalSources: in.ExternalSources,
		EvaluatedAt:     in.EvaluatedAt,
		ModelVersion:    in.ModelVersion,
	}

	switch level {
	case models.RiskLow:
		d.Decision = models.DecisionApproved
		d.Approved = true
		d.DecisionReasons = []string{"Low risk profile", "Good credit history", "Clean claims record"}
		d.Conditions = []string{"Standard policy terms apply"}
		d.Exclusions = []string{}

	case models.RiskMedium:
		d.Decision = models.DecisionApproved
		d.Approved = true
		d.DecisionReasons = []string{"Moderate risk profile", "Acceptable underwriting criteria met"}
		if len(in.Rules.RiskFactors) > 0 {
			d.DecisionReasons = append(d.DecisionReasons, "Some risk factors present")
		}
		d.Conditions = []string{"Standard policy terms apply", "Annual policy review required"}
		d.Exclusions = []string{}

	case models.RiskHigh:
		d.Decision = models.DecisionApprovedWithConds
		d.Approved = true
		d.DecisionReasons = []string{
			"High risk profile",
			fmt.Sprintf("Risk factors identified: %d", len(in.Rules.RiskFactors)),
		}
		d.Conditions = []string{
			"Higher deductible required",
			"Six-month policy review",
			"No coverage for first 30 days",
			"Additional documentation required annually",
		}
		d.Exclusions = exclusionsFor(in.Rules.RiskFactors)

	default: // very high
		if in.Score > hardDeclineScore {
			return declined(in)
		}
		d.Decision = models.DecisionReferToManualReview
		d.DecisionReasons = []string{
			"Very high risk profile",
			"Requires senior underwriter approval",
			"Additional information needed",
		}
		d.Conditions = []string{"Manual underwriting review required"}
		d.Exclusions = []string{}
		return d // no premium until manual review
	}

	d.Premium = scoring.ComputePremium(in.Profile.InsuranceType, in.Score, in.Rules.RiskFactors)
	return d
}

// declined builds the terminal decline verdict. External verification detail
// is withheld: a declined applicant sees the failed rules, nothing about
// which bureaus were consulted.
func declined(in Input) *models.Decision {
	reasons := make([]string, 0, len(in.Rules.RulesFailed)+1)
	reasons = append(reasons, "Application declined due to:")
	reasons = append(reasons, in.Rules.RulesFailed...)

	return &models.Decision{
		ApplicationID:   in.Profile.ApplicantID,
		Decision:        models.DecisionDeclined,
		RiskLevel:       models.RiskVeryHigh,
		RiskScore:       in.Score,
		DecisionReasons: reasons,
		Conditions:      []string{},
		Exclusions:      []string{},
		ExternalSources: []string{},
		EvaluatedAt:     in.EvaluatedAt,
		ModelVersion:    in.ModelVersion,
	}
}

// Exclusion clauses keyed by the factor category that triggers them.
var exclusionsByCategory = map[rules.FactorCategory]string{
	rules.FactorAccident:  "Accident forgiveness not available",
	rules.FactorViolation: "Traffic violation surcharge waiver not available",
	rules.FactorFlood:     "Flood damage excluded (separate flood insurance required)",
	rules.FactorCredit:    "Premium payment plan restrictions may apply",
}

func exclusionsFor(factors []rules.RiskFactor) []string {
	out := make([]string, 0, len(factors))
	for _, f := range factors {
		if clause, ok := exclusionsByCategory[f.Category]; ok {
			out = append(out, clause)
		}
	}
	return pstrings.DedupeAndTrim(out)
}
