package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/market"
)

// maxPromptText caps how much extracted deck text goes into the prompt.
const maxPromptText = 20000

// BuildPrompt assembles the analyst prompt sent to the generative service.
// The response contract is a single JSON object in the Qualitative shape;
// Sanitize tolerates any deviation, so the prompt is best-effort guidance,
// not a protocol.
func BuildPrompt(rec kpi.Record, mkt market.Data, extractedText string) string {
	companyJSON, _ := json.MarshalIndent(rec, "", "  ")
	marketJSON, _ := json.MarshalIndent(mkt, "", "  ")

	text := extractedText
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	var b strings.Builder
	b.WriteString("As an expert venture capital analyst, analyze this startup pitch deck and provide qualitative investment insights.\n\n")
	fmt.Fprintf(&b, "COMPANY DATA:\n%s\n\n", companyJSON)
	fmt.Fprintf(&b, "MARKET CONTEXT:\n%s\n\n", marketJSON)
	fmt.Fprintf(&b, "PITCH DECK CONTENT:\n%s\n\n", text)
	b.WriteString(`Respond with a single JSON object in exactly this shape:
{
  "factors": [<key growth factors>],
  "keyDrivers": [<growth drivers>],
  "redFlags": [<concerning issues>],
  "mitigationStrategies": [<risk mitigation suggestions>],
  "marketTrends": [<relevant trends>],
  "competitivePosition": "<description>",
  "marketSize": <estimated market size in USD>,
  "growthRate": <market growth rate percentage>,
  "opportunities": [<opportunities>],
  "threats": [<threats>],
  "recommendations": [
    {
      "type": "<investment|growth|risk-mitigation|market-strategy>",
      "priority": "<High|Medium|Low>",
      "title": "<title>",
      "description": "<detailed description>",
      "expectedImpact": "<impact description>",
      "timeline": "<implementation timeline>"
    }
  ]
}

Focus on actionable insights for investors: market conditions, competitive landscape, team capability, and financial trajectory. Output valid JSON only, no extra commentary.`)

	return b.String()
}
