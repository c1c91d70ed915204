package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"benchlens/config"
)

var rootCmd = &cobra.Command{
	Use:   "benchlens",
	Short: "Batch ETL and portfolio-vs-benchmark analytics for daily market data",
	Long: `Benchlens ingests daily price history and reference metadata for a
benchmark universe, normalizes them into a SQLite store, and answers
interactive portfolio-vs-benchmark performance questions.

Commands:
  etl      - run the metadata and benchmark pipelines
  analyze  - compare a portfolio selection against the benchmark
  tickers  - list the instruments traded in a period
  runs     - list recorded ETL runs
  config   - generate or validate configuration files`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional: pick up SOURCE_TOKEN and LOG_LEVEL from .env
		_ = godotenv.Load()
	},
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "settings.yaml", "path to the settings file")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
