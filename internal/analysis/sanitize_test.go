package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_NilMap(t *testing.T) {
	got := Sanitize(nil)

	assert.Equal(t, []string{}, got.Factors)
	assert.Equal(t, []string{}, got.KeyDrivers)
	assert.Equal(t, []string{}, got.RedFlags)
	assert.Equal(t, []string{}, got.MitigationStrategies)
	assert.Equal(t, []string{}, got.MarketTrends)
	assert.Equal(t, "Position analysis pending", got.CompetitivePosition)
	assert.Equal(t, int64(0), got.MarketSize)
	assert.Equal(t, float64(0), got.GrowthRate)
	assert.Equal(t, []Recommendation{}, got.Recommendations)
}

func TestSanitize_WellFormedPayload(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"factors": ["Strong team", "Large market"],
		"keyDrivers": ["Product velocity"],
		"redFlags": ["Burn rate"],
		"mitigationStrategies": ["Extend runway"],
		"marketTrends": ["AI adoption"],
		"competitivePosition": "Category leader",
		"marketSize": 5000000000,
		"growthRate": 22.5,
		"opportunities": ["Enterprise expansion"],
		"threats": ["Incumbents"],
		"recommendations": [{
			"type": "investment",
			"priority": "High",
			"title": "Lead the round",
			"description": "Strong fundamentals justify a lead position",
			"expectedImpact": "Outsized returns",
			"timeline": "Q3"
		}]
	}`), &raw))

	got := Sanitize(raw)

	assert.Equal(t, []string{"Strong team", "Large market"}, got.Factors)
	assert.Equal(t, "Category leader", got.CompetitivePosition)
	assert.Equal(t, int64(5000000000), got.MarketSize)
	assert.Equal(t, 22.5, got.GrowthRate)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, RecommendInvestment, got.Recommendations[0].Type)
	assert.Equal(t, PriorityHigh, got.Recommendations[0].Priority)
	assert.Equal(t, "Lead the round", got.Recommendations[0].Title)
}

func TestSanitize_MalformedFields(t *testing.T) {
	got := Sanitize(map[string]any{
		"factors":             "not an array",
		"keyDrivers":          []any{"ok", 42, "", "  ", "also ok"},
		"competitivePosition": "   ",
		"marketSize":          -5.0,
		"growthRate":          "fast",
		"recommendations":     []any{"not a map", map[string]any{"type": "bogus", "priority": "urgent"}},
	})

	assert.Equal(t, []string{}, got.Factors)
	assert.Equal(t, []string{"ok", "also ok"}, got.KeyDrivers)
	assert.Equal(t, "Position analysis pending", got.CompetitivePosition)
	assert.Equal(t, int64(0), got.MarketSize)
	assert.Equal(t, float64(0), got.GrowthRate)

	require.Len(t, got.Recommendations, 1)
	rec := got.Recommendations[0]
	assert.Equal(t, RecommendGrowth, rec.Type)
	assert.Equal(t, PriorityMedium, rec.Priority)
	assert.Equal(t, "Recommendation", rec.Title)
	assert.Equal(t, "Description pending", rec.Description)
	assert.Equal(t, "Impact analysis pending", rec.ExpectedImpact)
	assert.Equal(t, "Timeline to be determined", rec.Timeline)
}

func TestSanitize_SlicesMarshalAsArrays(t *testing.T) {
	data, err := json.Marshal(Sanitize(nil))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "null")
}

func TestSanitize_NumericCoercion(t *testing.T) {
	got := Sanitize(map[string]any{
		"marketSize": float64(1500000),
		"growthRate": 40,
	})
	assert.Equal(t, int64(1500000), got.MarketSize)
	assert.Equal(t, float64(40), got.GrowthRate)
}

func TestFallback_IsComplete(t *testing.T) {
	fb := Fallback()

	assert.NotEmpty(t, fb.Factors)
	assert.NotEmpty(t, fb.KeyDrivers)
	assert.NotEmpty(t, fb.RedFlags)
	assert.NotEmpty(t, fb.MitigationStrategies)
	assert.NotEmpty(t, fb.MarketTrends)
	assert.NotEmpty(t, fb.CompetitivePosition)
	assert.Equal(t, int64(1_000_000_000), fb.MarketSize)
	assert.Equal(t, float64(15), fb.GrowthRate)
	require.Len(t, fb.Recommendations, 1)
	assert.Equal(t, RecommendGrowth, fb.Recommendations[0].Type)
	assert.Equal(t, PriorityHigh, fb.Recommendations[0].Priority)
}
