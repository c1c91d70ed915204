package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"benchlens/analysis"
	"benchlens/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare a portfolio selection against the benchmark",
	Long: `Build aligned portfolio and benchmark price series over a date window
and print the performance indicators side by side.

Examples:
  benchlens analyze --start 2023-01-02 --end 2023-12-29 --tickers MC.PA,OR.PA
  benchlens analyze --start 2023-01-02 --end 2023-12-29 --breakdown sector,country
  benchlens analyze --start 2023-01-02 --end 2023-12-29 --series`,
	RunE: runAnalyze,
}

var (
	analyzeStart     string
	analyzeEnd       string
	analyzeTickers   []string
	analyzeSeries    bool
	analyzeBreakdown []string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "start date YYYY-MM-DD (required)")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "end date YYYY-MM-DD (required)")
	analyzeCmd.Flags().StringSliceVar(&analyzeTickers, "tickers", nil, "portfolio tickers (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeSeries, "series", false, "also print the aligned evolution table")
	analyzeCmd.Flags().StringSliceVar(&analyzeBreakdown, "breakdown", nil, "also print selection proportions per attribute, e.g. sector,country")
	analyzeCmd.MarkFlagRequired("start")
	analyzeCmd.MarkFlagRequired("end")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start, end, err := parseWindow(analyzeStart, analyzeEnd)
	if err != nil {
		return err
	}

	tickers := analyzeTickers
	if len(tickers) == 0 {
		tickers = cfg.Dashboard.DefaultTickers
	}
	tickers = dedupe(tickers)
	if len(tickers) > cfg.Dashboard.MaxTickers {
		return fmt.Errorf("at most %d tickers may be selected, got %d", cfg.Dashboard.MaxTickers, len(tickers))
	}

	merged, err := store.LoadMerged(
		cfg.Database.Path(cfg.Main.OutputVersion),
		cfg.Database.PriceTable,
		cfg.Database.MetadataTable,
		"ticker",
	)
	if err != nil {
		return fmt.Errorf("load merged view: %w", err)
	}

	ds, err := analysis.NewDataset(merged)
	if err != nil {
		return err
	}

	if len(ds.TickersInPeriod(start, end)) == 0 {
		first, last := ds.Bounds()
		fmt.Println("No stocks are traded during this period. Markets are closed on weekends and public holidays.")
		fmt.Printf("Price data covers %s to %s.\n", first.Format("2006-01-02"), last.Format("2006-01-02"))
		return nil
	}

	pair, err := ds.Prepare(start, end, tickers)
	switch {
	case errors.Is(err, analysis.ErrNoData):
		fmt.Println("No data available for this period and these stocks. Please change your selection.")
		return nil
	case errors.Is(err, analysis.ErrNoCommonDates):
		fmt.Println("No common trading date for all selected stocks in the chosen period.")
		return nil
	case err != nil:
		return err
	}

	cmp, err := analysis.Compare(pair, analysis.Params{
		RiskFreeRate:       cfg.Dashboard.RiskFreeRate,
		TradingDaysPerYear: cfg.Dashboard.TradingDaysPerYear,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d trading days used, common dates %s to %s\n\n",
		len(pair.Portfolio.Dates),
		pair.Portfolio.Dates[0].Format("2006-01-02"),
		pair.Portfolio.Dates[len(pair.Portfolio.Dates)-1].Format("2006-01-02"))
	fmt.Print(cmp.Format())

	for _, col := range analyzeBreakdown {
		shares, err := ds.Breakdown(col, pair.Tickers)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(analysis.FormatBreakdown(col, shares))
	}

	if analyzeSeries {
		fmt.Println()
		fmt.Print(cmp.FormatSeries())
	}
	return nil
}

// dedupe keeps the first occurrence of each ticker, preserving order.
func dedupe(tickers []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be later than the start date")
	}
	return start, end, nil
}
