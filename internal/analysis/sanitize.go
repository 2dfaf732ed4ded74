package analysis

import (
	"strings"
)

// Placeholder strings substituted when the generative payload omits a field.
const (
	pendingPosition    = "Position analysis pending"
	pendingTitle       = "Recommendation"
	pendingDescription = "Description pending"
	pendingImpact      = "Impact analysis pending"
	pendingTimeline    = "Timeline to be determined"
)

// Sanitize coerces a possibly malformed generative payload into a complete
// Qualitative. It never panics and never returns a value that violates the
// shape, whatever the input: nil maps, wrong-typed fields, and out-of-range
// values all resolve to typed fallbacks. This is the safety boundary between
// the external text-generation result and the rest of the system.
func Sanitize(raw map[string]any) Qualitative {
	return Qualitative{
		Factors:              stringSlice(raw["factors"]),
		KeyDrivers:           stringSlice(raw["keyDrivers"]),
		RedFlags:             stringSlice(raw["redFlags"]),
		MitigationStrategies: stringSlice(raw["mitigationStrategies"]),
		MarketTrends:         stringSlice(raw["marketTrends"]),
		CompetitivePosition:  stringOr(raw["competitivePosition"], pendingPosition),
		MarketSize:           nonNegativeInt64(raw["marketSize"]),
		GrowthRate:           nonNegativeFloat(raw["growthRate"]),
		Opportunities:        stringSlice(raw["opportunities"]),
		Threats:              stringSlice(raw["threats"]),
		Recommendations:      sanitizeRecommendations(raw["recommendations"]),
	}
}

func sanitizeRecommendations(v any) []Recommendation {
	items, ok := v.([]any)
	if !ok {
		return []Recommendation{}
	}

	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{
			Type:           recommendationType(m["type"]),
			Priority:       priority(m["priority"]),
			Title:          stringOr(m["title"], pendingTitle),
			Description:    stringOr(m["description"], pendingDescription),
			ExpectedImpact: stringOr(m["expectedImpact"], pendingImpact),
			Timeline:       stringOr(m["timeline"], pendingTimeline),
		})
	}
	return recs
}

func recommendationType(v any) RecommendationType {
	s, _ := v.(string)
	switch RecommendationType(s) {
	case RecommendInvestment, RecommendGrowth, RecommendRiskMitigation, RecommendMarketStrategy:
		return RecommendationType(s)
	default:
		return RecommendGrowth
	}
}

func priority(v any) Priority {
	s, _ := v.(string)
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// stringSlice coerces a decoded JSON value into a string slice, dropping
// non-string elements. Non-array input yields an empty slice, never nil, so
// the field marshals as [] rather than null.
func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func nonNegativeInt64(v any) int64 {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return 0
	}
	return int64(f)
}

func nonNegativeFloat(v any) float64 {
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
