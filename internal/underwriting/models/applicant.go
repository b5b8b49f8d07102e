package models

// InsuranceType enumerates the lines of business the engine underwrites.
type InsuranceType string

const (
	InsuranceTypeAuto   InsuranceType = "auto"
	InsuranceTypeHome   InsuranceType = "home"
	InsuranceTypeLife   InsuranceType = "life"
	InsuranceTypeHealth InsuranceType = "health"
)

func (t InsuranceType) IsValid() bool {
	switch t {
	case InsuranceTypeAuto, InsuranceTypeHome, InsuranceTypeLife, InsuranceTypeHealth:
		return true
	}
	return false
}

// EmploymentStatus enumerates accepted employment situations.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentEmployed, EmploymentSelfEmployed, EmploymentUnemployed, EmploymentRetired:
		return true
	}
	return false
}

// ConstructionType enumerates accepted primary construction materials.
type ConstructionType string

const (
	ConstructionWood     ConstructionType = "wood"
	ConstructionBrick    ConstructionType = "brick"
	ConstructionConcrete ConstructionType = "concrete"
	ConstructionMixed    ConstructionType = "mixed"
)

func (c ConstructionType) IsValid() bool {
	switch c {
	case ConstructionWood, ConstructionBrick, ConstructionConcrete, ConstructionMixed:
		return true
	}
	return false
}

// ClaimsHistory records an applicant's prior claims activity.
type ClaimsHistory struct {
	TotalClaims        int     `json:"total_claims"`
	ClaimsLast3Years   int     `json:"claims_last_3_years"`
	TotalClaimedAmount float64 `json:"total_claimed_amount"`
	FraudIndicators    bool    `json:"fraud_indicators"`
}

// DrivingRecord is required for auto insurance.
type DrivingRecord struct {
	YearsLicensed        int  `json:"years_licensed"`
	AccidentsLast5Years  int  `json:"accidents_last_5_years"`
	ViolationsLast3Years int  `json:"violations_last_3_years"`
	DUIHistory           bool `json:"dui_history"`
	LicenseSuspended     bool `json:"license_suspended"`
}

// PropertyInfo is required for home insurance.
type PropertyInfo struct {
	PropertyAge         int              `json:"property_age"`
	ConstructionType    ConstructionType `json:"construction_type"`
	SecuritySystem      bool             `json:"security_system"`
	FireProtectionClass int              `json:"fire_protection_class"`
	FloodZone           bool             `json:"flood_zone"`
}

// ApplicantProfile is a fully validated application.
//
// Invariants (enforced at construction by Application.Validate):
//   - Age in [18,100], CreditScore in [300,850]
//   - AnnualIncome and CoverageAmount non-negative
//   - ClaimsHistory present with non-negative counts
//   - exactly the type-specific record for InsuranceType is populated:
//     auto -> DrivingRecord, home -> PropertyInfo,
//     health/life -> Smoker (and optionally PreExistingConditions)
//
// Treat profiles as immutable once built; the pipeline never mutates them.
type ApplicantProfile struct {
	ApplicantID      string           `json:"applicant_id"`
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	CreditScore      int              `json:"credit_score"`
	AnnualIncome     float64          `json:"annual_income"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	InsuranceType    InsuranceType    `json:"insurance_type"`
	CoverageAmount   float64          `json:"coverage_amount"`
	ClaimsHistory    ClaimsHistory    `json:"claims_history"`

	DrivingRecord *DrivingRecord `json:"driving_record,omitempty"`
	PropertyInfo  *PropertyInfo  `json:"property_info,omitempty"`

	Smoker                *bool `json:"smoker,omitempty"`
	PreExistingConditions *bool `json:"pre_existing_conditions,omitempty"`
}

// YearsLicensed returns the licensed years for classifier features. Non-auto
// applicants substitute adult years (age minus 18).
func (p *ApplicantProfile) YearsLicensed() int {
	if p.DrivingRecord != nil {
		return p.DrivingRecord.YearsLicensed
	}
	if p.Age >= 18 {
		return p.Age - 18
	}
	return 0
}

// IsSmoker reports the smoker flag, false when not collected.
func (p *ApplicantProfile) IsSmoker() bool {
	return p.Smoker != nil && *p.Smoker
}

// HasPreExistingConditions reports the pre-existing conditions flag, false
// when not collected.
func (p *ApplicantProfile) HasPreExistingConditions() bool {
	return p.PreExistingConditions != nil && *p.PreExistingConditions
}
