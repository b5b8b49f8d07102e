// Package rules implements the deterministic underwriting rule battery.
// Evaluate is pure domain logic - no I/O, no side effects. The battery order
// affects only report readability; every rule is recorded even after an
// auto-decline trigger so the report stays complete.
package rules

import (
	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/verification"
)

// Credit score thresholds for the base credit rule.
const (
	creditAutoDeclineBelow = 550
	creditHighRiskBelow    = 600
	creditAcceptableFrom   = 700
)

// Evaluate runs the full rule battery against a validated profile, preferring
// the bureau-verified credit score when verification succeeded.
func Evaluate(profile *models.ApplicantProfile, evidence *verification.Evidence) Evaluation {
	var e Evaluation

	creditScore := evidence.VerifiedCreditScore(profile.CreditScore)

	// Rule 1: credit score.
	switch {
	case creditScore < creditAutoDeclineBelow:
		e.fail("Credit score below minimum threshold (550)")
		e.AutoDecline = true
	case creditScore < creditHighRiskBelow:
		e.fail("Credit score in high-risk range (550-600)")
		e.factor(FactorCredit, "Low credit score")
	case creditScore < creditAcceptableFrom:
		e.factor(FactorCredit, "Below average credit score")
	default:
		e.pass("Credit score acceptable")
	}

	// Rule 2: fraud indicators force a decline regardless of anything else.
	if profile.ClaimsHistory.FraudIndicators {
		e.fail("Fraud indicators present in claims history")
		e.AutoDecline = true
	}

	// Rule 3: claims frequency.
	switch claims := profile.ClaimsHistory.ClaimsLast3Years; {
	case claims > 3:
		e.fail("Excessive claims (>3 in last 3 years)")
		e.factor(FactorClaims, "High claims frequency")
	case claims > 1:
		e.factor(FactorClaims, "Multiple recent claims")
	default:
		e.pass("Claims history acceptable")
	}

	// Rule 4: age band. Outliers are risk factors, never failures.
	switch {
	case profile.Age < 21:
		e.factor(FactorAge, "Young applicant (under 21)")
	case profile.Age > 75:
		e.factor(FactorAge, "Senior applicant (over 75)")
	default:
		e.pass("Age within standard range")
	}

	// Rule 5: type-specific sub-battery.
	switch profile.InsuranceType {
	case models.InsuranceTypeAuto:
		e.evaluateAuto(profile.DrivingRecord)
	case models.InsuranceTypeHome:
		e.evaluateHome(profile.PropertyInfo)
	case models.InsuranceTypeHealth, models.InsuranceTypeLife:
		e.evaluateHealth(profile)
	}

	// Rule 6: coverage amount relative to income.
	if profile.AnnualIncome > 0 {
		ratio := profile.CoverageAmount / profile.AnnualIncome
		switch {
		case ratio > 10:
			e.factor(FactorCoverageRatio, "Coverage amount very high relative to income")
		case ratio > 5:
			e.factor(FactorCoverageRatio, "Coverage amount high relative to income")
		}
	}

	return e
}

func (e *Evaluation) evaluateAuto(dr *models.DrivingRecord) {
	if dr == nil {
		return
	}

	if dr.DUIHistory {
		e.fail("DUI/DWI history present")
		e.factor(FactorDUI, "DUI history")
		e.AutoDecline = true
	} else {
		e.pass("No DUI/DWI history")
	}

	if dr.LicenseSuspended {
		e.fail("License suspension history")
		e.factor(FactorLicense, "License suspended")
	}

	switch {
	case dr.AccidentsLast5Years > 3:
		e.fail("Excessive accidents (>3 in 5 years)")
		e.factor(FactorAccident, "High accident rate")
	case dr.AccidentsLast5Years > 1:
		e.factor(FactorAccident, "Multiple accidents")
	default:
		e.pass("Acceptable accident history")
	}

	switch {
	case dr.ViolationsLast3Years > 5:
		e.fail("Excessive violations (>5 in 3 years)")
		e.factor(FactorViolation, "Multiple traffic violations")
	case dr.ViolationsLast3Years > 2:
		e.factor(FactorViolation, "Several traffic violations")
	default:
		e.pass("Acceptable violation history")
	}

	if dr.YearsLicensed < 2 {
		e.factor(FactorExperience, "Limited driving experience")
	} else {
		e.pass("Adequate driving experience")
	}
}

func (e *Evaluation) evaluateHome(pi *models.PropertyInfo) {
	if pi == nil {
		return
	}

	if pi.PropertyAge > 50 {
		e.factor(FactorPropertyAge, "Old property (>50 years)")
	}

	if pi.ConstructionType == models.ConstructionWood {
		e.factor(FactorConstruction, "Wood construction - fire risk")
	} else {
		e.pass("Durable construction type")
	}

	if pi.SecuritySystem {
		e.pass("Security system installed")
	} else {
		e.factor(FactorSecurity, "No security system")
	}

	switch {
	case pi.FireProtectionClass > 7:
		e.fail("Poor fire protection class (>7)")
		e.factor(FactorFireProtection, "Limited fire protection")
	case pi.FireProtectionClass <= 4:
		e.pass("Excellent fire protection")
	}

	if pi.FloodZone {
		e.factor(FactorFlood, "Property in flood zone")
	}
}

func (e *Evaluation) evaluateHealth(profile *models.ApplicantProfile) {
	if profile.IsSmoker() {
		e.factor(FactorSmoker, "Smoker - increased health risk")
	} else {
		e.pass("Non-smoker")
	}

	if profile.HasPreExistingConditions() {
		e.factor(FactorPreExisting, "Pre-existing health conditions")
	} else {
		e.pass("No pre-existing conditions")
	}
}

func (e *Evaluation) pass(description string) {
	e.RulesPassed = append(e.RulesPassed, description)
}

func (e *Evaluation) fail(description string) {
	e.RulesFailed = append(e.RulesFailed, description)
}

func (e *Evaluation) factor(category FactorCategory, description string) {
	e.RiskFactors = append(e.RiskFactors, RiskFactor{Category: category, Description: description})
}
