// Package extract pulls plain text out of pitch deck sources: local PDF
// or text files, or URL-hosted decks via Firecrawl.
package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/deckscore/internal/config"
	"github.com/sells-group/deckscore/pkg/firecrawl"
)

// Extractor extracts text content from a deck source. The source is a
// local file path or an http(s) URL.
type Extractor interface {
	ExtractText(ctx context.Context, source string) (string, error)
}

// NewExtractor creates an Extractor based on config. The Firecrawl client
// may be nil, in which case URL sources are rejected.
func NewExtractor(cfg config.ExtractConfig, fc firecrawl.Client) (Extractor, error) {
	switch cfg.Provider {
	case "local", "":
		return &router{
			local: NewPdfToText(cfg.PdfToTextPath),
			web:   fc,
		}, nil
	default:
		return nil, eris.Errorf("extract: unknown provider %q", cfg.Provider)
	}
}

// router dispatches by source kind: URLs go to Firecrawl, local files to
// the pdftotext-backed extractor.
type router struct {
	local *PdfToText
	web   firecrawl.Client
}

func (r *router) ExtractText(ctx context.Context, source string) (string, error) {
	var text string
	var err error

	if isURL(source) {
		if r.web == nil {
			return "", eris.New("extract: URL source requires a firecrawl key")
		}
		text, err = scrapeURL(ctx, r.web, source)
	} else {
		text, err = r.local.ExtractText(ctx, source)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", eris.Errorf("extract: no text content in %s", source)
	}
	return text, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func scrapeURL(ctx context.Context, fc firecrawl.Client, url string) (string, error) {
	resp, err := fc.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
	})
	if err != nil {
		return "", eris.Wrapf(err, "extract: scrape %s", url)
	}
	if !resp.Success {
		return "", eris.Errorf("extract: scrape %s did not succeed", url)
	}
	return resp.Data.Markdown, nil
}
