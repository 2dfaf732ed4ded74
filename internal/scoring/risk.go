package scoring

import (
	"strings"

	"github.com/sells-group/deckscore/internal/kpi"
)

const riskBase = 50

// RiskScore computes the risk score for a normalized record. Higher means
// riskier. Early stages, unproven revenue, crowded competition, tiny teams,
// and unquantified markets push the score up from the base.
func RiskScore(rec kpi.Record) int {
	score := riskBase
	score += stageRiskSignal(rec.FundingStage)
	score += revenueRiskSignal(rec.Revenue)
	score += competitionRiskSignal(rec.Competition)
	score += teamRiskSignal(rec.TeamSize)
	score += marketRiskSignal(rec.MarketSize)
	return clamp(score)
}

func stageRiskSignal(stage string) int {
	lower := strings.ToLower(stage)
	switch {
	case strings.Contains(lower, "pre-seed"), strings.Contains(lower, "seed"):
		return 20
	case strings.Contains(lower, "series a"):
		return 10
	case strings.Contains(lower, "series b"):
		return -5
	case strings.Contains(lower, "series c"), strings.Contains(lower, "ipo"):
		return -15
	default:
		return 0
	}
}

func revenueRiskSignal(revenue string) int {
	if revenue == "" || containsAny(revenue, "projected", "estimated") {
		return 15
	}
	if containsAny(revenue, "million", "billion") {
		return -10
	}
	return 0
}

func competitionRiskSignal(competition string) int {
	if strings.TrimSpace(competition) == "" {
		return 0
	}
	count := competitorCount(competition)
	switch {
	case count > 5:
		return 15
	case count > 3:
		return 10
	case count <= 2:
		return -5
	default:
		return 0
	}
}

func teamRiskSignal(teamSize string) int {
	size, ok := firstInt(teamSize)
	if !ok {
		return 0
	}
	switch {
	case size < 3:
		return 15
	case size >= 10:
		return -5
	default:
		return 0
	}
}

func marketRiskSignal(marketSize string) int {
	if marketSize == "" {
		return 10
	}
	if !containsAny(marketSize, "billion", "million") {
		return 10
	}
	return 0
}

// Risk level thresholds.
const (
	riskLowMax    = 35
	riskMediumMax = 65
)

// RiskLevel is the categorical risk label derived from a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// LevelForScore maps a risk score onto its categorical label.
func LevelForScore(score int) RiskLevel {
	switch {
	case score <= riskLowMax:
		return RiskLow
	case score <= riskMediumMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskAssessment breaks risk down into a label, the numeric score, and four
// independently clamped factor axes.
type RiskAssessment struct {
	OverallRisk RiskLevel   `json:"overallRisk"`
	RiskScore   int         `json:"riskScore"`
	RiskFactors RiskFactors `json:"riskFactors"`
}

// RiskFactors holds the per-axis breakdown, each in [0,100].
type RiskFactors struct {
	Market      int `json:"market"`
	Team        int `json:"team"`
	Financial   int `json:"financial"`
	Competitive int `json:"competitive"`
}

// BuildRiskAssessment derives the categorical label and factor breakdown from
// the record and its risk score.
func BuildRiskAssessment(rec kpi.Record, riskScore int) RiskAssessment {
	market := 40
	if rec.MarketSize != "" {
		market -= 10
	} else {
		market += 10
	}

	team := 30
	size, ok := firstInt(rec.TeamSize)
	switch {
	case rec.TeamSize == "":
		team += 15
	case ok && size > 5:
		team -= 10
	default:
		team += 10
	}

	financial := 50
	if rec.Revenue != "" {
		financial -= 15
	} else {
		financial += 20
	}

	competitive := 45
	if rec.Competition != "" {
		competitive += competitorCount(rec.Competition) * 5
	} else {
		competitive += 10
	}

	return RiskAssessment{
		OverallRisk: LevelForScore(riskScore),
		RiskScore:   riskScore,
		RiskFactors: RiskFactors{
			Market:      clamp(market),
			Team:        clamp(team),
			Financial:   clamp(financial),
			Competitive: clamp(competitive),
		},
	}
}
