// Package kpi defines the canonical company-KPI record and the normalization
// layer that converts arbitrary extracted data into it.
package kpi

// Record is the canonical scoring input. Every field is optional; when
// present it is a single trimmed string. Arrays and objects from upstream
// extraction are flattened at normalization time, so downstream consumers
// never see structured values.
type Record struct {
	CompanyName      string `json:"companyName,omitempty"`
	Sector           string `json:"sector,omitempty"`
	FundingStage     string `json:"fundingStage,omitempty"`
	Revenue          string `json:"revenue,omitempty"`
	TeamSize         string `json:"teamSize,omitempty"`
	MarketSize       string `json:"marketSize,omitempty"`
	Customers        string `json:"customers,omitempty"`
	Competition      string `json:"competition,omitempty"`
	BusinessModel    string `json:"businessModel,omitempty"`
	Traction         string `json:"traction,omitempty"`
	Technology       string `json:"technology,omitempty"`
	GeographicMarket string `json:"geographicMarket,omitempty"`
	KeyMetrics       string `json:"keyMetrics,omitempty"`
	FundingRequest   string `json:"fundingRequest,omitempty"`
	UseOfFunds       string `json:"useOfFunds,omitempty"`
}

// TrackedFields lists the twelve fields that feed the confidence score, in
// fixed order. Company name, sector and geography are identity data rather
// than diligence answers, so they are excluded.
var TrackedFields = []string{
	"fundingStage",
	"revenue",
	"teamSize",
	"marketSize",
	"customers",
	"competition",
	"businessModel",
	"traction",
	"technology",
	"keyMetrics",
	"fundingRequest",
	"useOfFunds",
}

// Get returns the value of a canonical field by name. Unknown names return
// the empty string.
func (r Record) Get(field string) string {
	switch field {
	case "companyName":
		return r.CompanyName
	case "sector":
		return r.Sector
	case "fundingStage":
		return r.FundingStage
	case "revenue":
		return r.Revenue
	case "teamSize":
		return r.TeamSize
	case "marketSize":
		return r.MarketSize
	case "customers":
		return r.Customers
	case "competition":
		return r.Competition
	case "businessModel":
		return r.BusinessModel
	case "traction":
		return r.Traction
	case "technology":
		return r.Technology
	case "geographicMarket":
		return r.GeographicMarket
	case "keyMetrics":
		return r.KeyMetrics
	case "fundingRequest":
		return r.FundingRequest
	case "useOfFunds":
		return r.UseOfFunds
	default:
		return ""
	}
}

// IsEmpty reports whether no canonical field is populated.
func (r Record) IsEmpty() bool {
	return r == Record{}
}
