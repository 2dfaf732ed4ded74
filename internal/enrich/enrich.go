// Package enrich produces the qualitative side of an analysis by prompting
// a generative model and sanitizing whatever comes back. Enrichment is
// best effort: any failure degrades to the generic fallback payload so
// the deterministic scores always ship.
package enrich

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/config"
	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/market"
	"github.com/sells-group/deckscore/pkg/anthropic"
	"github.com/sells-group/deckscore/pkg/gemini"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator creates a Generator based on config.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.Enrich.Provider {
	case "gemini", "":
		if cfg.Gemini.Key == "" {
			return nil, eris.New("enrich: gemini provider requires gemini key")
		}
		client, err := gemini.NewClient(ctx, cfg.Gemini.Key)
		if err != nil {
			return nil, err
		}
		return &geminiGenerator{client: client, model: cfg.Gemini.Model}, nil
	case "anthropic":
		if cfg.Anthropic.Key == "" {
			return nil, eris.New("enrich: anthropic provider requires anthropic key")
		}
		return &anthropicGenerator{
			client:    anthropic.NewClient(cfg.Anthropic.Key),
			model:     cfg.Anthropic.Model,
			maxTokens: int64(cfg.Anthropic.MaxTokens),
		}, nil
	default:
		return nil, eris.Errorf("enrich: unknown provider %q", cfg.Enrich.Provider)
	}
}

type geminiGenerator struct {
	client gemini.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.client.GenerateText(ctx, gemini.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
	})
}

type anthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func (g *anthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Enricher runs the prompt-generate-sanitize loop.
type Enricher struct {
	gen     Generator
	timeout time.Duration
}

// NewEnricher creates an Enricher. A nil generator yields an Enricher that
// always returns the fallback payload.
func NewEnricher(gen Generator, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Enricher{gen: gen, timeout: timeout}
}

// Enrich builds the analyst prompt and returns the sanitized qualitative
// payload. Generation or parse failures are logged and replaced with the
// fallback; the error path never propagates to the caller.
func (e *Enricher) Enrich(ctx context.Context, rec kpi.Record, mkt market.Data, extractedText string) analysis.Qualitative {
	if e.gen == nil {
		return analysis.Fallback()
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := analysis.BuildPrompt(rec, mkt, extractedText)

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("enrich: generation failed, using fallback",
			zap.String("company", rec.CompanyName),
			zap.Error(err))
		return analysis.Fallback()
	}

	obj, ok := analysis.ExtractJSON(raw)
	if !ok {
		zap.L().Warn("enrich: no parseable JSON in response, using fallback",
			zap.String("company", rec.CompanyName),
			zap.Int("response_len", len(raw)))
		return analysis.Fallback()
	}

	return analysis.Sanitize(obj)
}
