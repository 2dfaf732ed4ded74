package scoring

import "github.com/sells-group/deckscore/internal/kpi"

// Bundle is the full deterministic scoring output for one record.
type Bundle struct {
	GrowthScore       int            `json:"growthScore"`
	RiskScore         int            `json:"riskScore"`
	InvestmentScore   int            `json:"investmentScore"`
	ConfidenceScore   int            `json:"confidenceScore"`
	GrowthProjections Projections    `json:"growthProjections"`
	RiskAssessment    RiskAssessment `json:"riskAssessment"`
}

// Score computes every deterministic score for a normalized record.
func Score(rec kpi.Record) Bundle {
	growth := GrowthScore(rec)
	risk := RiskScore(rec)

	return Bundle{
		GrowthScore:       growth,
		RiskScore:         risk,
		InvestmentScore:   InvestmentScore(growth, risk),
		ConfidenceScore:   ConfidenceScore(rec),
		GrowthProjections: GrowthProjections(rec),
		RiskAssessment:    BuildRiskAssessment(rec, risk),
	}
}

// ScoreRaw normalizes a raw KPI map and scores it in one step.
func ScoreRaw(raw map[string]any) Bundle {
	return Score(kpi.Normalize(raw))
}
