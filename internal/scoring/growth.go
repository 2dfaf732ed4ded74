package scoring

import "github.com/sells-group/deckscore/internal/kpi"

const growthBase = 50

// GrowthScore computes the growth-potential score for a normalized record.
// It starts from a neutral base and adds bounded signal contributions from
// revenue, market size, traction, team size, and funding stage, clamping the
// total to [0,100].
func GrowthScore(rec kpi.Record) int {
	score := growthBase
	score += revenueSignal(rec.Revenue)
	score += marketSizeSignal(rec.MarketSize)
	score += tractionSignal(rec.Traction)
	score += teamSizeSignal(rec.TeamSize)
	score += fundingStageSignal(rec.FundingStage)
	return clamp(score)
}
