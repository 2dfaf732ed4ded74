// Package gemini wraps the google.golang.org/genai SDK behind a small
// text-generation interface.
package gemini

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// DefaultModel is used when the caller does not name one.
const DefaultModel = "gemini-2.0-flash"

// Client defines the Gemini operations used by the enrichment layer.
type Client interface {
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest holds the inputs for a single text generation.
type GenerateRequest struct {
	Model       string
	Prompt      string
	System      string
	Temperature *float32
}

// sdkClient implements Client using the official genai SDK.
type sdkClient struct {
	client *genai.Client
}

// NewClient creates a Gemini client against the public Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	return &sdkClient{client: client}, nil
}

func (c *sdkClient) GenerateText(ctx context.Context, req GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	config := &genai.GenerateContentConfig{}
	if req.Temperature != nil {
		config.Temperature = genai.Ptr(*req.Temperature)
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	var text strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				break
			}
		}
	}

	if text.Len() == 0 {
		return "", eris.New("gemini: empty response from model")
	}

	return text.String(), nil
}
