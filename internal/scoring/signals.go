// Package scoring implements the deterministic investment-readiness scoring
// kernel. Every function here is pure: no I/O, no clock, no randomness, so a
// fixed kpi.Record always produces a bit-identical Bundle.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// firstNumber returns the first numeric token in s, ignoring thousands
// separators ("10,000" parses as 10000).
func firstNumber(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, ",", "")
	match := numberPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// firstInt returns the first integer in s, truncating any fraction.
func firstInt(s string) (int, bool) {
	v, ok := firstNumber(s)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// revenueSignal awards up to 30 growth points from the revenue string.
// Billion-scale revenue maxes the signal; million-scale is tiered by the
// leading amount; a bare number earns minimal credit.
func revenueSignal(revenue string) int {
	if revenue == "" {
		return 0
	}
	lower := strings.ToLower(revenue)
	switch {
	case strings.Contains(lower, "billion"):
		return 30
	case strings.Contains(lower, "million"):
		amount, ok := firstNumber(revenue)
		if !ok {
			return 15
		}
		switch {
		case amount >= 100:
			return 30
		case amount >= 50:
			return 25
		case amount >= 10:
			return 20
		case amount >= 1:
			return 15
		default:
			return 10
		}
	case hasDigit(revenue):
		return 10
	default:
		return 0
	}
}

// marketSizeSignal awards up to 25 growth points from the market-size string.
func marketSizeSignal(marketSize string) int {
	if marketSize == "" {
		return 0
	}
	switch {
	case containsAny(marketSize, "trillion", "billion"):
		return 25
	case containsAny(marketSize, "million"):
		return 15
	case hasDigit(marketSize):
		return 10
	default:
		return 0
	}
}

// tractionKeywords is the fixed vocabulary scanned in traction text. Each
// distinct keyword present contributes 3 points, capped at 20.
var tractionKeywords = []string{
	"growth", "million", "users", "customers", "revenue", "expansion", "partnerships",
}

func tractionSignal(traction string) int {
	if traction == "" {
		return 0
	}
	lower := strings.ToLower(traction)
	points := 0
	for _, kw := range tractionKeywords {
		if strings.Contains(lower, kw) {
			points += 3
		}
	}
	if points > 20 {
		points = 20
	}
	return points
}

// teamSizeSignal awards up to 10 growth points, tiered by parsed headcount.
func teamSizeSignal(teamSize string) int {
	size, ok := firstInt(teamSize)
	if !ok {
		return 0
	}
	switch {
	case size >= 50:
		return 10
	case size >= 20:
		return 8
	case size >= 10:
		return 6
	case size >= 3:
		return 4
	default:
		return 0
	}
}

// fundingStageSignal awards up to 15 growth points for maturity of stage.
func fundingStageSignal(stage string) int {
	lower := strings.ToLower(stage)
	switch {
	case strings.Contains(lower, "series c"),
		strings.Contains(lower, "series d"),
		strings.Contains(lower, "ipo"):
		return 15
	case strings.Contains(lower, "series b"):
		return 12
	case strings.Contains(lower, "series a"):
		return 8
	case strings.Contains(lower, "seed"):
		return 5
	default:
		return 0
	}
}

// competitorCount counts comma-separated entries in the competition string.
// An empty string counts as zero competitors.
func competitorCount(competition string) int {
	if strings.TrimSpace(competition) == "" {
		return 0
	}
	count := 0
	for _, part := range strings.Split(competition, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// clamp restricts v to [0,100].
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// roundHalfUp rounds to the nearest integer with ties away from zero, so the
// result never depends on runtime float rounding mode.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}
