package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/deckscore/internal/store"
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Inspect stored analyses",
	Long:  "Commands for listing and viewing persisted pitch deck analyses.",
}

// -- analyses list --

var analysesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		company, _ := cmd.Flags().GetString("company")
		sector, _ := cmd.Flags().GetString("sector")
		minScore, _ := cmd.Flags().GetInt("min-score")
		limit, _ := cmd.Flags().GetInt("limit")

		items, err := st.ListAnalyses(ctx, store.ListFilter{
			Company:       company,
			Sector:        sector,
			MinInvestment: minScore,
			Limit:         limit,
		})
		if err != nil {
			return eris.Wrap(err, "analyses list")
		}

		if len(items) == 0 {
			fmt.Fprintln(os.Stderr, "No analyses found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCOMPANY\tSECTOR\tSCORE\tCREATED")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				it.ID, it.Company, it.Sector, it.InvestmentScore,
				it.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		return nil
	},
}

// -- analyses show --

var analysesShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show full details of an analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.GetAnalysis(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "analyses show")
		}
		return printJSON(rec)
	},
}

func init() {
	analysesListCmd.Flags().String("company", "", "filter by company name")
	analysesListCmd.Flags().String("sector", "", "filter by sector")
	analysesListCmd.Flags().Int("min-score", 0, "minimum investment score")
	analysesListCmd.Flags().Int("limit", 50, "maximum rows")

	analysesCmd.AddCommand(analysesListCmd, analysesShowCmd)
	rootCmd.AddCommand(analysesCmd)
}
