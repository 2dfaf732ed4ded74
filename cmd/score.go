package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/deckscore/internal/kpi"
	"github.com/sells-group/deckscore/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute deterministic scores for a KPI document",
	Long:  "Normalizes a raw KPI JSON object and computes the growth, risk, investment, and confidence scores along with growth projections and the risk assessment.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		raw, err := loadRawKPIs(input)
		if err != nil {
			return err
		}

		rec := kpi.Normalize(raw)
		bundle := scoring.Score(rec)

		if output == "table" {
			formatBundle(rec, bundle)
			return nil
		}
		return printJSON(struct {
			Company kpi.Record     `json:"company"`
			Scores  scoring.Bundle `json:"scores"`
		}{rec, bundle})
	},
}

func formatBundle(rec kpi.Record, b scoring.Bundle) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if rec.CompanyName != "" {
		fmt.Fprintf(w, "Company:\t%s\n", rec.CompanyName)
	}
	fmt.Fprintf(w, "Growth score:\t%d\n", b.GrowthScore)
	fmt.Fprintf(w, "Risk score:\t%d (%s)\n", b.RiskScore, scoring.LevelForScore(b.RiskScore))
	fmt.Fprintf(w, "Investment score:\t%d\n", b.InvestmentScore)
	fmt.Fprintf(w, "Confidence:\t%d\n", b.ConfidenceScore)
	fmt.Fprintf(w, "Projected growth:\tY1 %d%%\tY3 %d%%\tY5 %d%%\n",
		b.GrowthProjections.Year1, b.GrowthProjections.Year3, b.GrowthProjections.Year5)
	w.Flush()
}

func init() {
	scoreCmd.Flags().String("input", "-", "raw KPI JSON file ('-' for stdin)")
	scoreCmd.Flags().String("output", "json", "output format: json or table")
	rootCmd.AddCommand(scoreCmd)
}
