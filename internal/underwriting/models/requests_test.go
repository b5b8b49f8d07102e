package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAutoApplication() *Application {
	return &Application{
		ApplicantID:      "APP-2025-001",
		Name:             "John Smith",
		Age:              35,
		CreditScore:      750,
		AnnualIncome:     75000,
		EmploymentStatus: "employed",
		InsuranceType:    "auto",
		CoverageAmount:   100000,
		ClaimsHistory: &ClaimsHistory{
			TotalClaims:        1,
			ClaimsLast3Years:   0,
			TotalClaimedAmount: 5000,
		},
		DrivingRecord: &DrivingRecord{
			YearsLicensed:        15,
			AccidentsLast5Years:  0,
			ViolationsLast3Years: 1,
		},
	}
}

func TestValidate_ValidAuto(t *testing.T) {
	app := validAutoApplication()
	app.Normalize()

	profile, err := app.Validate()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, InsuranceTypeAuto, profile.InsuranceType)
	assert.Equal(t, EmploymentEmployed, profile.EmploymentStatus)
	assert.Equal(t, 15, profile.YearsLicensed())
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	app := &Application{
		ApplicantID:      "",
		Name:             "X",
		Age:              17,
		CreditScore:      200,
		AnnualIncome:     -1,
		EmploymentStatus: "freelancer",
		InsuranceType:    "auto",
		CoverageAmount:   -5,
		// claims history and driving record both missing
	}
	app.Normalize()

	profile, err := app.Validate()
	require.Nil(t, profile)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]bool)
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	for _, want := range []string{
		"applicant_id", "name", "age", "credit_score", "annual_income",
		"employment_status", "coverage_amount", "claims_history", "driving_record",
	} {
		assert.True(t, fields[want], "expected violation for %s", want)
	}
}

func TestValidate_TypeSpecificPresence(t *testing.T) {
	t.Run("auto requires driving record", func(t *testing.T) {
		app := validAutoApplication()
		app.DrivingRecord = nil
		_, err := app.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "driving_record", verr.Violations[0].Field)
	})

	t.Run("home requires property info", func(t *testing.T) {
		app := validAutoApplication()
		app.InsuranceType = "home"
		app.DrivingRecord = nil
		_, err := app.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "property_info", verr.Violations[0].Field)
	})

	t.Run("health requires smoker flag", func(t *testing.T) {
		app := validAutoApplication()
		app.InsuranceType = "health"
		app.DrivingRecord = nil
		_, err := app.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "smoker", verr.Violations[0].Field)
	})

	t.Run("life requires smoker flag", func(t *testing.T) {
		app := validAutoApplication()
		app.InsuranceType = "life"
		app.DrivingRecord = nil
		smoker := false
		app.Smoker = &smoker
		_, err := app.Validate()
		require.NoError(t, err)
	})
}

func TestValidate_HomeConstraints(t *testing.T) {
	app := validAutoApplication()
	app.InsuranceType = "home"
	app.DrivingRecord = nil
	app.PropertyInfo = &PropertyInfo{
		PropertyAge:         -2,
		ConstructionType:    "straw",
		FireProtectionClass: 11,
	}
	_, err := app.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]bool)
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["property_info.property_age"])
	assert.True(t, fields["property_info.construction_type"])
	assert.True(t, fields["property_info.fire_protection_class"])
}

func TestNormalize(t *testing.T) {
	app := validAutoApplication()
	app.ApplicantID = "  APP-1  "
	app.InsuranceType = " AUTO "
	app.EmploymentStatus = "Employed"
	app.Normalize()

	assert.Equal(t, "APP-1", app.ApplicantID)
	assert.Equal(t, "auto", app.InsuranceType)
	assert.Equal(t, "employed", app.EmploymentStatus)
}

func TestYearsLicensed_NonAutoFallback(t *testing.T) {
	smoker := true
	profile := &ApplicantProfile{Age: 45, InsuranceType: InsuranceTypeHealth, Smoker: &smoker}
	assert.Equal(t, 27, profile.YearsLicensed())
	assert.True(t, profile.IsSmoker())
	assert.False(t, profile.HasPreExistingConditions())
}
