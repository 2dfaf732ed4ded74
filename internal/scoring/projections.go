package scoring

import (
	"strings"

	"github.com/sells-group/deckscore/internal/kpi"
)

// Projections holds projected growth percentages at one, three, and five
// years. year1 <= year3 <= year5 by construction.
type Projections struct {
	Year1 int `json:"year1"`
	Year3 int `json:"year3"`
	Year5 int `json:"year5"`
}

// GrowthProjections derives multi-year growth projections from the market
// size, traction, and funding stage signals. The base rate feeds monotone
// non-decreasing multipliers, so the year ordering invariant always holds.
func GrowthProjections(rec kpi.Record) Projections {
	base := 25.0

	switch {
	case containsAny(rec.MarketSize, "billion", "trillion"):
		base += 25
	case containsAny(rec.MarketSize, "million"):
		base += 15
	}

	switch {
	case containsAny(rec.Traction, "million"):
		base += 20
	case containsAny(rec.Traction, "growth"):
		base += 10
	}

	stage := strings.ToLower(rec.FundingStage)
	switch {
	case strings.Contains(stage, "seed"):
		base += 15
	case strings.Contains(stage, "series a"):
		base += 10
	}

	return Projections{
		Year1: roundHalfUp(min(base, 80)),
		Year3: roundHalfUp(min(base*2.5, 200)),
		Year5: roundHalfUp(min(base*4, 400)),
	}
}
