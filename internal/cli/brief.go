package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"marketbrief/internal/symbols"
	"marketbrief/internal/usecase"
)

var (
	briefQuery   string
	briefSymbols string
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Produce a market brief for a query",
	Long: `Fetch market data and news, rank context against the query, and print
a narrative brief.

Examples:
  marketbrief brief -q "What's our risk exposure in TSMC?"
  marketbrief brief -q "earnings outlook" --symbols TSM,005930.KS`,
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(briefCmd)
	briefCmd.Flags().StringVarP(&briefQuery, "query", "q", "", "brief query (required)")
	briefCmd.Flags().StringVar(&briefSymbols, "symbols", "", "comma-separated ticker symbols (default: extracted from query)")
	briefCmd.MarkFlagRequired("query")
}

func runBrief(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	req := usecase.Request{Query: briefQuery}
	if briefSymbols != "" {
		req.Symbols = symbols.Parse(briefSymbols)
	}

	syms := req.Symbols
	if len(syms) == 0 {
		syms = symbols.FromQuery(req.Query)
	}

	// Warm the quote cache symbol by symbol so the bar reflects progress.
	bar := progressbar.NewOptions(len(syms),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Fetching market data"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
	for _, s := range syms {
		if _, err := app.market.History(cmd.Context(), []string{s}); err != nil {
			log.WithError(err).WithField("symbol", s).Warn("prefetch failed")
		}
		bar.Add(1)
	}

	result, err := app.uc.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("brief failed: %w", err)
	}

	fmt.Println(result.Summary)
	return nil
}
