// Package scoring combines the rule evaluation, classifier prediction, and
// applicant attributes into a single 0-100 risk score, and prices the
// corresponding premium.
package scoring

import (
	"underwriter/internal/underwriting/classifier"
	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/rules"
)

// Component caps. The weights sum to 100 only when the classifier is
// available; without it the ceiling is 85.
const (
	creditWeight = 30.0
	claimsWeight = 20.0
	ageWeight    = 10.0
	rulesWeight  = 25.0
	bucketWeight = 7.5
)

// Score computes the composite risk score, clamped to [0,100]. The credit
// component uses the self-reported score: verification adjusts rule outcomes,
// not the numeric blend.
func Score(profile *models.ApplicantProfile, eval *rules.Evaluation, pred classifier.Prediction) float64 {
	credit := creditWeight - float64(profile.CreditScore-300)/550*creditWeight
	if credit < 0 {
		credit = 0
	}

	claims := float64(profile.ClaimsHistory.ClaimsLast3Years) * 5
	if claims > claimsWeight {
		claims = claimsWeight
	}

	var age float64
	switch {
	case profile.Age < 25 || profile.Age > 70:
		age = ageWeight
	case profile.Age < 30 || profile.Age > 65:
		age = ageWeight / 2
	}

	ruleBased := float64(len(eval.RiskFactors))*3 + float64(len(eval.RulesFailed))*5
	if ruleBased > rulesWeight {
		ruleBased = rulesWeight
	}

	var ml float64
	if pred.Available {
		ml = float64(pred.Bucket) * bucketWeight
	}

	score := credit + claims + age + ruleBased + ml
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// Level maps a numeric score onto the coarse risk band.
func Level(score float64) models.RiskLevel {
	switch {
	case score < 30:
		return models.RiskLow
	case score < 50:
		return models.RiskMedium
	case score < 70:
		return models.RiskHigh
	default:
		return models.RiskVeryHigh
	}
}
