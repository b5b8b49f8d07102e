package scoring

import (
	"github.com/shopspring/decimal"

	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/rules"
)

// Monthly base premiums by insurance type.
var basePremiums = map[models.InsuranceType]decimal.Decimal{
	models.InsuranceTypeAuto:   decimal.NewFromInt(150),
	models.InsuranceTypeHome:   decimal.NewFromInt(120),
	models.InsuranceTypeLife:   decimal.NewFromInt(80),
	models.InsuranceTypeHealth: decimal.NewFromInt(200),
}

var defaultBasePremium = decimal.NewFromInt(150)

// Surcharge rates applied per risk factor, as a fraction of the base
// premium. Each factor maps to at most one rate through its category tag, so
// a single factor never accrues two surcharge classes.
var surchargeRates = map[rules.FactorCategory]decimal.Decimal{
	rules.FactorDUI:      decimal.NewFromFloat(0.5),
	rules.FactorAccident: decimal.NewFromFloat(0.2),
	rules.FactorClaims:   decimal.NewFromFloat(0.2),
	rules.FactorCredit:   decimal.NewFromFloat(0.15),
}

// ComputePremium prices the monthly premium: base by insurance type, a risk
// multiplier of 1.0-3.0 driven by the score, plus per-factor surcharges. All
// amounts are rounded to cents.
func ComputePremium(insuranceType models.InsuranceType, score float64, factors []rules.RiskFactor) *models.Premium {
	base, ok := basePremiums[insuranceType]
	if !ok {
		base = defaultBasePremium
	}

	multiplier := decimal.NewFromFloat(1 + (score/100)*2)
	riskAdjusted := base.Mul(multiplier)

	surcharge := decimal.Zero
	for _, f := range factors {
		if rate, ok := surchargeRates[f.Category]; ok {
			surcharge = surcharge.Add(base.Mul(rate))
		}
	}

	monthly := riskAdjusted.Add(surcharge)

	return &models.Premium{
		Base:         base.Round(2),
		RiskAdjusted: riskAdjusted.Round(2),
		Surcharge:    surcharge.Round(2),
		MonthlyTotal: monthly.Round(2),
		AnnualTotal:  monthly.Mul(decimal.NewFromInt(12)).Round(2),
	}
}
