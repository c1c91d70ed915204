package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchlens/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage settings files.

Subcommands:
  init     - Generate a default settings file
  validate - Validate an existing settings file

Examples:
  benchlens config init --output settings.yaml
  benchlens config validate --file settings.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default settings file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a settings file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "settings.yaml", "output settings file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to settings file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("created default settings: %s\n", configInitOutput)
	fmt.Println("edit the file and run with:")
	fmt.Printf("  benchlens etl --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("settings valid: %s\n", configValidatePath)
	fmt.Printf("  benchmark: %s\n", cfg.Benchmark.Name)
	fmt.Printf("  database:  %s\n", cfg.Database.Path(cfg.Main.OutputVersion))
	fmt.Printf("  excel:     %s\n", cfg.Excel.Path(cfg.Main.OutputVersion))
	return nil
}
