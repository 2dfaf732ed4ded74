package scoring

import "github.com/sells-group/deckscore/internal/kpi"

// Investment score weights: growth-weighted but risk-adjusted.
const (
	investGrowthWeight = 60
	investRiskWeight   = 40
)

// InvestmentScore combines the growth and risk scores into a single
// investment-readiness number. Integer rounding keeps the result
// reproducible across runtimes.
func InvestmentScore(growthScore, riskScore int) int {
	weighted := float64(growthScore*investGrowthWeight+(100-riskScore)*investRiskWeight) / 100
	return clamp(roundHalfUp(weighted))
}

// ConfidenceScore measures field completeness over the tracked KPI fields.
// Detailed answers (longer than 10 characters) earn full credit, terse ones
// partial credit, missing fields none.
func ConfidenceScore(rec kpi.Record) int {
	const (
		fullCredit    = 100
		partialCredit = 60
		detailMinLen  = 10
	)

	total := 0
	for _, field := range kpi.TrackedFields {
		v := rec.Get(field)
		switch {
		case v == "":
			// no credit
		case len(v) > detailMinLen:
			total += fullCredit
		default:
			total += partialCredit
		}
	}

	avg := float64(total) / float64(len(kpi.TrackedFields))
	return clamp(roundHalfUp(avg))
}
