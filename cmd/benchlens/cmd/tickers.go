package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"benchlens/analysis"
	"benchlens/store"
)

var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "List the instruments traded in a period",
	Long: `List the distinct instruments having at least one price row in the
given inclusive date window.

Example:
  benchlens tickers --start 2023-01-02 --end 2023-03-31`,
	RunE: runTickers,
}

var (
	tickersStart string
	tickersEnd   string
)

func init() {
	rootCmd.AddCommand(tickersCmd)
	tickersCmd.Flags().StringVar(&tickersStart, "start", "", "start date YYYY-MM-DD (required)")
	tickersCmd.Flags().StringVar(&tickersEnd, "end", "", "end date YYYY-MM-DD (required)")
	tickersCmd.MarkFlagRequired("start")
	tickersCmd.MarkFlagRequired("end")
}

func runTickers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start, end, err := parseWindow(tickersStart, tickersEnd)
	if err != nil {
		return err
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

	tickers := ds.TickersInPeriod(start, end)
	if len(tickers) == 0 {
		first, last := ds.Bounds()
		fmt.Printf("no instruments traded in this period (price data covers %s to %s)\n",
			first.Format("2006-01-02"), last.Format("2006-01-02"))
		return nil
	}
	fmt.Println(strings.Join(tickers, "\n"))
	return nil
}
