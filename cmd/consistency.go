package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/deckscore/internal/scoring"
)

var consistencyCmd = &cobra.Command{
	Use:   "consistency",
	Short: "Verify that repeated scoring runs agree",
	Long:  "Scores the same KPI document multiple times and reports whether every run produced identical results. Exits non-zero on divergence.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		runs, _ := cmd.Flags().GetInt("runs")

		raw, err := loadRawKPIs(input)
		if err != nil {
			return err
		}

		result := scoring.Verify(raw, runs)

		if err := printJSON(result); err != nil {
			return err
		}

		if !result.Consistent {
			zap.L().Error("scoring diverged across runs", zap.Int("runs", len(result.Runs)))
			return fmt.Errorf("scoring is not consistent across %d runs", len(result.Runs))
		}
		return nil
	},
}

func init() {
	consistencyCmd.Flags().String("input", "-", "raw KPI JSON file ('-' for stdin)")
	consistencyCmd.Flags().Int("runs", scoring.DefaultVerifyRuns, "number of scoring runs to compare")
	rootCmd.AddCommand(consistencyCmd)
}
