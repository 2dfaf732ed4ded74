package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/config"
	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/market"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestEnrich_ParsesGeneratedJSON(t *testing.T) {
	gen := &stubGenerator{response: `Here is my analysis:
{
  "factors": ["Experienced founders"],
  "competitivePosition": "Fast follower",
  "marketSize": 2000000000,
  "growthRate": 18
}`}

	e := NewEnricher(gen, time.Second)
	rec := kpi.Record{CompanyName: "Acme", Sector: "Fintech"}

	got := e.Enrich(context.Background(), rec, market.Data{Sector: "Fintech"}, "deck text")

	assert.Equal(t, []string{"Experienced founders"}, got.Factors)
	assert.Equal(t, "Fast follower", got.CompetitivePosition)
	assert.Equal(t, int64(2000000000), got.MarketSize)
	assert.Equal(t, float64(18), got.GrowthRate)

	// The prompt carries the company data and deck content.
	assert.Contains(t, gen.prompt, "Acme")
	assert.Contains(t, gen.prompt, "deck text")
}

func TestEnrich_GenerationFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: eris.New("rate limited")}

	e := NewEnricher(gen, time.Second)
	got := e.Enrich(context.Background(), kpi.Record{}, market.Data{}, "")

	assert.Equal(t, analysis.Fallback(), got)
}

func TestEnrich_UnparseableResponseFallsBack(t *testing.T) {
	gen := &stubGenerator{response: "I cannot produce JSON today."}

	e := NewEnricher(gen, time.Second)
	got := e.Enrich(context.Background(), kpi.Record{}, market.Data{}, "")

	assert.Equal(t, analysis.Fallback(), got)
}

func TestEnrich_NilGeneratorFallsBack(t *testing.T) {
	e := NewEnricher(nil, time.Second)
	got := e.Enrich(context.Background(), kpi.Record{}, market.Data{}, "")

	assert.Equal(t, analysis.Fallback(), got)
}

func TestNewGenerator_ProviderValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name:    "gemini without key",
			cfg:     config.Config{Enrich: config.EnrichConfig{Provider: "gemini"}},
			wantErr: "gemini key",
		},
		{
			name:    "anthropic without key",
			cfg:     config.Config{Enrich: config.EnrichConfig{Provider: "anthropic"}},
			wantErr: "anthropic key",
		},
		{
			name:    "unknown provider",
			cfg:     config.Config{Enrich: config.EnrichConfig{Provider: "oracle"}},
			wantErr: "unknown provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(context.Background(), &tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewGenerator_AnthropicWithKey(t *testing.T) {
	gen, err := NewGenerator(context.Background(), &config.Config{
		Enrich:    config.EnrichConfig{Provider: "anthropic"},
		Anthropic: config.AnthropicConfig{Key: "sk-test", MaxTokens: 1024},
	})
	require.NoError(t, err)
	assert.NotNil(t, gen)
}
