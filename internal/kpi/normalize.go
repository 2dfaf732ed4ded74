package kpi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// fieldAliases maps each canonical field to its accepted source keys in
// priority order. The first present, non-empty alias wins.
var fieldAliases = map[string][]string{
	"companyName":      {"companyName", "company", "name"},
	"sector":           {"sector", "industry"},
	"fundingStage":     {"fundingStage", "stage", "fundingRound"},
	"revenue":          {"revenue", "arr"},
	"teamSize":         {"teamSize", "employees", "headcount"},
	"marketSize":       {"marketSize", "tam"},
	"customers":        {"customers", "customerCount"},
	"competition":      {"competition", "competitors"},
	"businessModel":    {"businessModel"},
	"traction":         {"traction", "growthRate"},
	"technology":       {"technology"},
	"geographicMarket": {"geographicMarket", "geography"},
	"keyMetrics":       {"keyMetrics"},
	"fundingRequest":   {"fundingRequest", "askAmount"},
	"useOfFunds":       {"useOfFunds"},
}

// Normalize coerces an arbitrary, partially populated KPI map into a Record.
// It is total: any value shape is stringified rather than rejected, and a
// field that resolves to an empty string after trimming stays absent.
func Normalize(raw map[string]any) Record {
	var rec Record
	if len(raw) == 0 {
		return rec
	}

	set := func(field, value string) {
		switch field {
		case "companyName":
			rec.CompanyName = value
		case "sector":
			rec.Sector = value
		case "fundingStage":
			rec.FundingStage = value
		case "revenue":
			rec.Revenue = value
		case "teamSize":
			rec.TeamSize = value
		case "marketSize":
			rec.MarketSize = value
		case "customers":
			rec.Customers = value
		case "competition":
			rec.Competition = value
		case "businessModel":
			rec.BusinessModel = value
		case "traction":
			rec.Traction = value
		case "technology":
			rec.Technology = value
		case "geographicMarket":
			rec.GeographicMarket = value
		case "keyMetrics":
			rec.KeyMetrics = value
		case "fundingRequest":
			rec.FundingRequest = value
		case "useOfFunds":
			rec.UseOfFunds = value
		}
	}

	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			v, ok := raw[alias]
			if !ok {
				continue
			}
			s := strings.TrimSpace(Flatten(v))
			if s == "" {
				continue
			}
			set(field, s)
			break
		}
	}

	return rec
}

// Flatten converts any extracted value into a single human-readable string.
// Slices join with ", ", maps flatten to "key: value" pairs joined with "; "
// in sorted key order so repeated runs produce identical output.
func Flatten(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a trailing ".0".
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(Flatten(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.TrimSpace(Flatten(t[k])))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", t)
	}
}
