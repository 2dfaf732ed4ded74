// Package analysis defines the qualitative enrichment payload, the sanitizer
// that makes untrusted generative output safe, and the merge that combines it
// with deterministic scores into the final analysis record.
package analysis

import (
	"time"

	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/scoring"
)

// RecommendationType classifies a recommendation.
type RecommendationType string

const (
	RecommendInvestment     RecommendationType = "investment"
	RecommendGrowth         RecommendationType = "growth"
	RecommendRiskMitigation RecommendationType = "risk-mitigation"
	RecommendMarketStrategy RecommendationType = "market-strategy"
)

// Priority ranks a recommendation's urgency.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation is a single actionable suggestion from the enrichment path.
type Recommendation struct {
	Type           RecommendationType `json:"type"`
	Priority       Priority           `json:"priority"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	ExpectedImpact string             `json:"expectedImpact"`
	Timeline       string             `json:"timeline"`
}

// Qualitative is the narrative payload supplied by the generative service.
// Every field has a typed fallback, so a Qualitative produced by Sanitize or
// Fallback is always structurally complete.
type Qualitative struct {
	Factors              []string         `json:"factors"`
	KeyDrivers           []string         `json:"keyDrivers"`
	RedFlags             []string         `json:"redFlags"`
	MitigationStrategies []string         `json:"mitigationStrategies"`
	MarketTrends         []string         `json:"marketTrends"`
	CompetitivePosition  string           `json:"competitivePosition"`
	MarketSize           int64            `json:"marketSize"`
	GrowthRate           float64          `json:"growthRate"`
	Opportunities        []string         `json:"opportunities"`
	Threats              []string         `json:"threats"`
	Recommendations      []Recommendation `json:"recommendations"`
}

// Record is the final analysis returned to the caller: deterministic scores
// merged with sanitized qualitative content, plus an id and timestamp added
// strictly after scoring.
type Record struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Company     kpi.Record     `json:"company"`
	Scores      scoring.Bundle `json:"scores"`
	Qualitative Qualitative    `json:"qualitative"`
}
