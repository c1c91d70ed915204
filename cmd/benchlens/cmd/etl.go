package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"benchlens/etl"
	"benchlens/source"
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Run the ETL pipelines",
	Long: `Run the metadata and benchmark pipelines end to end: extract, transform,
load into the configured SQLite store and Excel workbook.

Examples:
  benchlens etl
  benchlens etl --only metadata
  benchlens etl --only benchmark`,
	RunE: runETL,
}

var etlOnly string

func init() {
	rootCmd.AddCommand(etlCmd)
	etlCmd.Flags().StringVar(&etlOnly, "only", "", "run a single pipeline: metadata or benchmark")
}

func runETL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if etlOnly != "" && etlOnly != "metadata" && etlOnly != "benchmark" {
		return fmt.Errorf("unknown pipeline %q (want metadata or benchmark)", etlOnly)
	}

	if etlOnly == "" || etlOnly == "metadata" {
		p := etl.NewMetadata(cfg)
		if err := p.Extract(); err != nil {
			return fmt.Errorf("metadata extract: %w", err)
		}
		if err := p.Transform(); err != nil {
			return fmt.Errorf("metadata transform: %w", err)
		}
		if err := p.Load(); err != nil {
			return fmt.Errorf("metadata load: %w", err)
		}
		fmt.Println("metadata pipeline done")
	}

	if etlOnly == "" || etlOnly == "benchmark" {
		timeout, err := cfg.Benchmark.Source.ParseDuration()
		if err != nil {
			return fmt.Errorf("source timeout: %w", err)
		}
		client := source.NewClient(
			cfg.Benchmark.Source.BaseURL,
			os.Getenv("SOURCE_TOKEN"),
			timeout,
		)
		p := etl.NewBenchmark(cfg, client)
		if err := p.Extract(cmd.Context()); err != nil {
			return fmt.Errorf("benchmark extract: %w", err)
		}
		if err := p.Transform(); err != nil {
			return fmt.Errorf("benchmark transform: %w", err)
		}
		if err := p.Load(); err != nil {
			return fmt.Errorf("benchmark load: %w", err)
		}
		fmt.Println("benchmark pipeline done")
	}

	return nil
}
