package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchlens/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded ETL runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Database.Path(cfg.Main.OutputVersion))
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer s.Close()

	runs, err := s.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	fmt.Printf("%-26s %-12s %8s %5s  %s\n", "run_id", "dataset", "rows", "cols", "finished")
	for _, r := range runs {
		fmt.Printf("%-26s %-12s %8d %5d  %s\n",
			r.ID, r.Dataset, r.Rows, r.Cols, r.Finished.Format("2006-01-02 15:04:05"))
	}
	return nil
}
