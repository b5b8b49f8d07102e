package handler

import (
	"fmt"
	"strings"
	"time"

	"underwriter/internal/pii"
	"underwriter/internal/underwriting/models"
	"underwriter/internal/underwriting/service"
)

const reportRule = "========================================================================"

// RenderReport produces the human-readable decision report included in
// single-evaluation responses. Names are masked; only the applicant ID
// appears verbatim.
func RenderReport(res *service.Result, now time.Time) string {
	dec := res.Decision
	profile := res.Profile

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(reportRule)
	line("          UNDERWRITING DECISION REPORT")
	line(reportRule)
	line("")
	line("Application ID: %s", dec.ApplicationID)
	line("Applicant: %s", pii.MaskName(profile.Name))
	line("Insurance Type: %s", strings.ToUpper(string(profile.InsuranceType)))
	line("Coverage Requested: $%.2f", profile.CoverageAmount)
	line("Timestamp: %s", now.UTC().Format(time.RFC3339))
	line("")
	line(reportRule)
	line("DECISION: %s %s", statusLabel(dec), approvalLabel(dec))
	line(reportRule)
	line("")
	line("Risk Assessment:")
	line("   Risk Level: %s", strings.ToUpper(string(dec.RiskLevel)))
	line("   Risk Score: %.2f/100", dec.RiskScore)
	line("")
	line("Decision Reasons:")
	for _, reason := range dec.DecisionReasons {
		line("   - %s", reason)
	}
	line("")
	line(reportRule)
	line("RISK ANALYSIS")
	line(reportRule)
	line("")
	line("Risk Factors Identified:")
	if len(res.Rules.RiskFactors) == 0 {
		line("   None identified")
	}
	for _, factor := range res.Rules.RiskFactors {
		line("   - %s", factor.Description)
	}
	line("")
	line("Rules Evaluation:")
	line("   Total Rules Evaluated: %d", res.Rules.TotalRulesEvaluated())
	line("   Rules Passed: %d", len(res.Rules.RulesPassed))
	line("   Rules Failed: %d", len(res.Rules.RulesFailed))
	line("")
	line("Machine Learning Assessment:")
	if res.Prediction.Available {
		line("   Risk prediction: %d (confidence: %.2f%%)", res.Prediction.Bucket, res.Prediction.Confidence*100)
	} else {
		line("   Model not available")
	}
	line("")
	line(reportRule)
	line("PREMIUM CALCULATION")
	line(reportRule)
	if dec.Premium == nil {
		line("   N/A - No premium quoted")
	} else {
		p := dec.Premium
		line("   Base Premium: $%s/month", p.Base.StringFixed(2))
		line("   Risk-Adjusted Premium: $%s/month", p.RiskAdjusted.StringFixed(2))
		line("   Additional Premium: $%s/month", p.Surcharge.StringFixed(2))
		line("   -------------------------------------------")
		line("   TOTAL MONTHLY PREMIUM: $%s", p.MonthlyTotal.StringFixed(2))
		line("   TOTAL ANNUAL PREMIUM: $%s", p.AnnualTotal.StringFixed(2))
	}
	line("")
	line(reportRule)
	line("POLICY TERMS")
	line(reportRule)
	line("")
	line("Conditions:")
	if len(dec.Conditions) == 0 {
		line("   None")
	}
	for i, cond := range dec.Conditions {
		line("   %d. %s", i+1, cond)
	}
	line("")
	line("Exclusions:")
	if len(dec.Exclusions) == 0 {
		line("   None")
	}
	for _, excl := range dec.Exclusions {
		line("   - %s", excl)
	}
	line("")
	line(reportRule)
	line("DATA VERIFICATION")
	line(reportRule)
	line("")
	line("External Data Sources:")
	if len(dec.ExternalSources) == 0 {
		line("   None")
	}
	for _, source := range dec.ExternalSources {
		line("   - %s", source)
	}
	line("")
	line("Credit Score Verified: %s", yesNo(dec.CreditVerified))
	line(reportRule)

	return b.String()
}

func statusLabel(dec *models.Decision) string {
	return strings.ToUpper(strings.ReplaceAll(string(dec.Decision), "_", " "))
}

func approvalLabel(dec *models.Decision) string {
	if dec.Approved {
		return "[APPROVED]"
	}
	return "[DECLINED]"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
