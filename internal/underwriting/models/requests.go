package models

import (
	"fmt"
	"strings"
)

// Application is the raw, unvalidated applicant record as submitted by the
// caller. Optional sub-records use pointers so presence can be enforced per
// insurance type.
type Application struct {
	ApplicantID      string  `json:"applicant_id"`
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	CreditScore      int     `json:"credit_score"`
	AnnualIncome     float64 `json:"annual_income"`
	EmploymentStatus string  `json:"employment_status"`
	InsuranceType    string  `json:"insurance_type"`
	CoverageAmount   float64 `json:"coverage_amount"`

	ClaimsHistory *ClaimsHistory `json:"claims_history"`
	DrivingRecord *DrivingRecord `json:"driving_record,omitempty"`
	PropertyInfo  *PropertyInfo  `json:"property_info,omitempty"`

	Smoker                *bool `json:"smoker,omitempty"`
	PreExistingConditions *bool `json:"pre_existing_conditions,omitempty"`
}

// Violation names one failed constraint on an application field.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violated constraint, not just the first, so
// callers can fix a submission in one round trip.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = v.Field + ": " + v.Reason
	}
	return "applicant validation failed: " + strings.Join(reasons, "; ")
}

// Normalize trims identifier fields and lowercases enum inputs in place.
func (a *Application) Normalize() {
	if a == nil {
		return
	}
	a.ApplicantID = strings.TrimSpace(a.ApplicantID)
	a.Name = strings.TrimSpace(a.Name)
	a.EmploymentStatus = strings.ToLower(strings.TrimSpace(a.EmploymentStatus))
	a.InsuranceType = strings.ToLower(strings.TrimSpace(a.InsuranceType))
	if a.PropertyInfo != nil {
		a.PropertyInfo.ConstructionType = ConstructionType(
			strings.ToLower(strings.TrimSpace(string(a.PropertyInfo.ConstructionType))))
	}
}

// Validate checks every constraint and either returns a fully constructed
// ApplicantProfile or a *ValidationError listing all violations. A profile is
// never partially constructed.
func (a *Application) Validate() (*ApplicantProfile, error) {
	var violations []Violation
	add := func(field, reason string) {
		violations = append(violations, Violation{Field: field, Reason: reason})
	}

	if a.ApplicantID == "" {
		add("applicant_id", "is required")
	}
	if len(a.Name) < 2 {
		add("name", "must be at least 2 characters")
	}
	if a.Age < 18 || a.Age > 100 {
		add("age", "must be between 18 and 100")
	}
	if a.CreditScore < 300 || a.CreditScore > 850 {
		add("credit_score", "must be between 300 and 850")
	}
	if a.AnnualIncome < 0 {
		add("annual_income", "must be non-negative")
	}
	if a.CoverageAmount < 0 {
		add("coverage_amount", "must be non-negative")
	}

	employment := EmploymentStatus(a.EmploymentStatus)
	if !employment.IsValid() {
		add("employment_status", "must be one of employed, self_employed, unemployed, retired")
	}

	insurance := InsuranceType(a.InsuranceType)
	if !insurance.IsValid() {
		add("insurance_type", "must be one of auto, home, life, health")
	}

	if a.ClaimsHistory == nil {
		add("claims_history", "is required")
	} else {
		if a.ClaimsHistory.TotalClaims < 0 {
			add("claims_history.total_claims", "must be non-negative")
		}
		if a.ClaimsHistory.ClaimsLast3Years < 0 {
			add("claims_history.claims_last_3_years", "must be non-negative")
		}
		if a.ClaimsHistory.TotalClaimedAmount < 0 {
			add("claims_history.total_claimed_amount", "must be non-negative")
		}
	}

	// Type-specific sub-record presence is mandatory; only check when the
	// insurance type itself parsed.
	if insurance.IsValid() {
		violations = append(violations, a.validateTypeSpecific(insurance)...)
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	profile := &ApplicantProfile{
		ApplicantID:           a.ApplicantID,
		Name:                  a.Name,
		Age:                   a.Age,
		CreditScore:           a.CreditScore,
		AnnualIncome:          a.AnnualIncome,
		EmploymentStatus:      employment,
		InsuranceType:         insurance,
		CoverageAmount:        a.CoverageAmount,
		ClaimsHistory:         *a.ClaimsHistory,
		DrivingRecord:         a.DrivingRecord,
		PropertyInfo:          a.PropertyInfo,
		Smoker:                a.Smoker,
		PreExistingConditions: a.PreExistingConditions,
	}
	return profile, nil
}

func (a *Application) validateTypeSpecific(insurance InsuranceType) []Violation {
	var violations []Violation
	add := func(field, reason string) {
		violations = append(violations, Violation{Field: field, Reason: reason})
	}

	switch insurance {
	case InsuranceTypeAuto:
		if a.DrivingRecord == nil {
			add("driving_record", "is required for auto insurance")
			break
		}
		dr := a.DrivingRecord
		if dr.YearsLicensed < 0 {
			add("driving_record.years_licensed", "must be non-negative")
		}
		if dr.AccidentsLast5Years < 0 {
			add("driving_record.accidents_last_5_years", "must be non-negative")
		}
		if dr.ViolationsLast3Years < 0 {
			add("driving_record.violations_last_3_years", "must be non-negative")
		}

	case InsuranceTypeHome:
		if a.PropertyInfo == nil {
			add("property_info", "is required for home insurance")
			break
		}
		pi := a.PropertyInfo
		if pi.PropertyAge < 0 {
			add("property_info.property_age", "must be non-negative")
		}
		if !pi.ConstructionType.IsValid() {
			add("property_info.construction_type", "must be one of wood, brick, concrete, mixed")
		}
		if pi.FireProtectionClass < 1 || pi.FireProtectionClass > 10 {
			add("property_info.fire_protection_class", "must be between 1 and 10")
		}

	case InsuranceTypeHealth, InsuranceTypeLife:
		if a.Smoker == nil {
			add("smoker", fmt.Sprintf("is required for %s insurance", insurance))
		}
	}

	return violations
}
