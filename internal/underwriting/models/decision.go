package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DecisionStatus enumerates the terminal underwriting outcomes.
type DecisionStatus string

const (
	DecisionApproved            DecisionStatus = "approved"
	DecisionApprovedWithConds   DecisionStatus = "approved_with_conditions"
	DecisionDeclined            DecisionStatus = "declined"
	DecisionReferToManualReview DecisionStatus = "refer_to_manual_review"
)

// RiskLevel is the coarse band derived from the numeric risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// Premium is the monthly premium breakdown. Absent on declined and
// refer_to_manual_review decisions.
type Premium struct {
	Base         decimal.Decimal `json:"base_premium"`
	RiskAdjusted decimal.Decimal `json:"premium_with_risk"`
	Surcharge    decimal.Decimal `json:"additional_premium"`
	MonthlyTotal decimal.Decimal `json:"total_monthly_premium"`
	AnnualTotal  decimal.Decimal `json:"total_annual_premium"`
}

// Decision is the final structured underwriting verdict. Ownership passes to
// the caller; the pipeline retains no reference after returning it.
type Decision struct {
	ApplicationID string         `json:"application_id"`
	Decision      DecisionStatus `json:"decision"`
	RiskLevel     RiskLevel      `json:"risk_level"`
	RiskScore     float64        `json:"risk_score"`
	Approved      bool           `json:"approved"`

	DecisionReasons []string `json:"decision_reasons"`
	Conditions      []string `json:"conditions"`
	Exclusions      []string `json:"exclusions"`

	Premium *Premium `json:"premium,omitempty"`

	CreditVerified  bool     `json:"credit_verified"`
	ExternalSources []string `json:"external_data_sources"`

	EvaluatedAt  time.Time `json:"timestamp"`
	ModelVersion string    `json:"model_version"`
}
