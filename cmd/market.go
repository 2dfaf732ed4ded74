package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/deckscore/internal/market"
	"github.com/sells-group/deckscore/pkg/newsapi"
)

var marketCmd = &cobra.Command{
	Use:   "market <sector>",
	Short: "Fetch market context for a sector",
	Long:  "Retrieves recent news for the sector, ranks articles by relevance, and reports aggregate sentiment and trend keywords.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.News.Key == "" {
			return eris.New("market: news key is not configured")
		}

		client := newsapi.NewClient(cfg.News.Key, newsapi.WithBaseURL(cfg.News.BaseURL))
		fetcher := market.NewFetcher(client, cfg.News.PageSize)

		data, err := fetcher.Fetch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(data)
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
}
