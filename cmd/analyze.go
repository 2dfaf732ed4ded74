package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/deckscore/internal/analysis"
	"github.com/sells-group/deckscore/internal/config"
	"github.com/sells-group/deckscore/internal/enrich"
	"github.com/sells-group/deckscore/internal/extract"
	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/market"
	"github.com/sells-group/deckscore/internal/scoring"
	"github.com/sells-group/deckscore/pkg/firecrawl"
	"github.com/sells-group/deckscore/pkg/newsapi"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <deck-file-or-url>",
	Short: "Run the full analysis pipeline on a pitch deck",
	Long:  "Extracts text from the deck, normalizes KPIs, computes deterministic scores, fetches market context, and enriches the result with qualitative analysis.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		kpiPath, _ := cmd.Flags().GetString("kpi")
		output, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetBool("save")

		raw, err := loadRawKPIs(kpiPath)
		if err != nil {
			return err
		}
		rec := kpi.Normalize(raw)

		var fc firecrawl.Client
		if cfg.Firecrawl.Key != "" {
			fc = firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
		}
		extractor, err := extract.NewExtractor(cfg.Extract, fc)
		if err != nil {
			return err
		}

		// Text extraction and market fetch are independent; run them together.
		var deckText string
		var mkt market.Data

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			text, err := extractor.ExtractText(gctx, args[0])
			if err != nil {
				return err
			}
			deckText = text
			return nil
		})
		g.Go(func() error {
			mkt = fetchMarket(gctx, rec.Sector)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		bundle := scoring.Score(rec)

		qual := runEnrichment(ctx, cfg, rec, mkt, deckText)
		record := analysis.Merge(rec, bundle, qual)

		if save {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.SaveAnalysis(ctx, record); err != nil {
				return err
			}
			zap.L().Info("analysis saved", zap.String("id", record.ID))
		}

		if output == "table" {
			formatAnalysis(record)
			return nil
		}
		return printJSON(record)
	},
}

// fetchMarket returns market context for the sector, or an empty context
// when news is unconfigured or the fetch fails. Market data enriches the
// prompt; it never blocks the pipeline.
func fetchMarket(ctx context.Context, sector string) market.Data {
	if cfg.News.Key == "" {
		return market.Data{Sector: sector, Sentiment: market.SentimentNeutral}
	}

	client := newsapi.NewClient(cfg.News.Key, newsapi.WithBaseURL(cfg.News.BaseURL))
	fetcher := market.NewFetcher(client, cfg.News.PageSize)

	data, err := fetcher.Fetch(ctx, sector)
	if err != nil {
		zap.L().Warn("market fetch failed, continuing without context",
			zap.String("sector", sector),
			zap.Error(err))
		return market.Data{Sector: sector, Sentiment: market.SentimentNeutral}
	}
	return data
}

// runEnrichment produces the qualitative payload, falling back to the
// generic one when no provider is configured or generation fails.
func runEnrichment(ctx context.Context, cfg *config.Config, rec kpi.Record, mkt market.Data, deckText string) analysis.Qualitative {
	gen, err := enrich.NewGenerator(ctx, cfg)
	if err != nil {
		zap.L().Warn("enrichment unavailable, using fallback", zap.Error(err))
		gen = nil
	}

	enricher := enrich.NewEnricher(gen, time.Duration(cfg.Enrich.TimeoutSecs)*time.Second)
	return enricher.Enrich(ctx, rec, mkt, deckText)
}

func formatAnalysis(rec *analysis.Record) {
	formatBundle(rec.Company, rec.Scores)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Risk level:\t%s\n", scoring.LevelForScore(rec.Scores.RiskScore))
	fmt.Fprintf(w, "Competitive position:\t%s\n", rec.Qualitative.CompetitivePosition)
	for _, r := range rec.Qualitative.Recommendations {
		fmt.Fprintf(w, "Recommendation [%s/%s]:\t%s\n", r.Type, r.Priority, r.Title)
	}
	w.Flush()
}

func init() {
	analyzeCmd.Flags().String("kpi", "", "raw KPI JSON file ('-' for stdin)")
	analyzeCmd.Flags().String("output", "json", "output format: json or table")
	analyzeCmd.Flags().Bool("save", false, "persist the analysis to the store")
	rootCmd.AddCommand(analyzeCmd)
}
