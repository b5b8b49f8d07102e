package rules

// FactorCategory tags a risk factor with the rule family that produced it.
// Downstream policy (exclusions, premium surcharges) keys off these tags
// instead of matching substrings in the human-readable descriptions.
type FactorCategory string

const (
	FactorCredit         FactorCategory = "credit"
	FactorClaims         FactorCategory = "claims"
	FactorAge            FactorCategory = "age"
	FactorDUI            FactorCategory = "dui"
	FactorLicense        FactorCategory = "license"
	FactorAccident       FactorCategory = "accident"
	FactorViolation      FactorCategory = "violation"
	FactorExperience     FactorCategory = "experience"
	FactorPropertyAge    FactorCategory = "property_age"
	FactorConstruction   FactorCategory = "construction"
	FactorSecurity       FactorCategory = "security"
	FactorFireProtection FactorCategory = "fire_protection"
	FactorFlood          FactorCategory = "flood"
	FactorSmoker         FactorCategory = "smoker"
	FactorPreExisting    FactorCategory = "pre_existing"
	FactorCoverageRatio  FactorCategory = "coverage_ratio"
)

// RiskFactor is a non-fatal signal increasing assessed risk without
// independently failing a rule.
type RiskFactor struct {
	Category    FactorCategory `json:"category"`
	Description string         `json:"description"`
}

// Evaluation is the rule engine output for a single application. It is
// produced per request, consumed by the scorer and decision composer, and
// discarded after the response is rendered.
type Evaluation struct {
	RulesPassed []string     `json:"rules_passed"`
	RulesFailed []string     `json:"rules_failed"`
	RiskFactors []RiskFactor `json:"risk_factors"`
	AutoDecline bool         `json:"auto_decline"`
}

// TotalRulesEvaluated counts pass/fail outcomes; risk factors alone do not
// count as evaluated rules.
func (e *Evaluation) TotalRulesEvaluated() int {
	return len(e.RulesPassed) + len(e.RulesFailed)
}

// FactorDescriptions returns the human-readable factor texts in order.
func (e *Evaluation) FactorDescriptions() []string {
	out := make([]string, len(e.RiskFactors))
	for i, f := range e.RiskFactors {
		out[i] = f.Description
	}
	return out
}

// HasFactor reports whether any factor carries the given category.
func (e *Evaluation) HasFactor(category FactorCategory) bool {
	for _, f := range e.RiskFactors {
		if f.Category == category {
			return true
		}
	}
	return false
}
