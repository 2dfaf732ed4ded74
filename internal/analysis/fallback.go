package analysis

// Fallback returns the generic qualitative payload used when the generative
// service is unavailable or its output cannot be parsed. The deterministic
// scores still stand; only the narrative degrades.
func Fallback() Qualitative {
	return Qualitative{
		Factors:              []string{"Market opportunity", "Team experience"},
		KeyDrivers:           []string{"Product innovation", "Market expansion"},
		RedFlags:             []string{"Competition risk", "Market timing"},
		MitigationStrategies: []string{"Strengthen competitive moat", "Accelerate go-to-market"},
		MarketTrends:         []string{"Digital transformation", "Remote work adoption"},
		CompetitivePosition:  "Emerging player with differentiated approach",
		MarketSize:           1_000_000_000,
		GrowthRate:           15,
		Opportunities:        []string{"Market expansion", "Product diversification"},
		Threats:              []string{"Increased competition", "Economic uncertainty"},
		Recommendations: []Recommendation{
			{
				Type:           RecommendGrowth,
				Priority:       PriorityHigh,
				Title:          "Accelerate Product Development",
				Description:    "Focus on core product features to establish market position",
				ExpectedImpact: "Improved market competitiveness",
				Timeline:       "6-12 months",
			},
		},
	}
}
