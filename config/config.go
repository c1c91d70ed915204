package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"benchlens/normalize"
)

// Config represents the complete application configuration.
type Config struct {
	Main      MainConfig      `json:"main" yaml:"main"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Metadata  MetadataConfig  `json:"metadata" yaml:"metadata"`
	Benchmark BenchmarkConfig `json:"benchmark" yaml:"benchmark"`
	Excel     ExcelConfig     `json:"excel" yaml:"excel"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
}

// MainConfig contains run-wide parameters.
type MainConfig struct {
	OutputVersion string `json:"output_version" yaml:"output_version"`
	ToExcel       bool   `json:"to_excel" yaml:"to_excel"`
	ToSQLite      bool   `json:"to_sqlite" yaml:"to_sqlite"`
	LogDir        string `json:"log_dir" yaml:"log_dir"`
}

// DatabaseConfig locates the SQLite store. File is a template
// parameterized by the output version, e.g. "benchlens_%s.db".
type DatabaseConfig struct {
	Dir           string `json:"dir" yaml:"dir"`
	File          string `json:"file" yaml:"file"`
	PriceTable    string `json:"price_table" yaml:"price_table"`
	MetadataTable string `json:"metadata_table" yaml:"metadata_table"`
}

// Path resolves the store path for an output version.
func (c DatabaseConfig) Path(version string) string {
	return filepath.Join(c.Dir, fmt.Sprintf(c.File, version))
}

// MetadataConfig locates the metadata flat file and its column groups.
type MetadataConfig struct {
	Dir     string                 `json:"dir" yaml:"dir"`
	File    string                 `json:"file" yaml:"file"`
	Columns normalize.ColumnGroups `json:"columns" yaml:"columns"`
}

// Path resolves the metadata file path.
func (c MetadataConfig) Path() string {
	return filepath.Join(c.Dir, c.File)
}

// BenchmarkConfig describes the benchmark universe and its ETL inputs.
type BenchmarkConfig struct {
	Name          string                 `json:"name" yaml:"name"`
	ComponentsURL string                 `json:"components_url" yaml:"components_url"`
	TickerColumn  string                 `json:"ticker_column" yaml:"ticker_column"`
	Source        SourceConfig           `json:"source" yaml:"source"`
	Columns       normalize.ColumnGroups `json:"columns" yaml:"columns"`
}

// SourceConfig points at the remote history service.
type SourceConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	Timeout string `json:"timeout" yaml:"timeout"` // e.g., "30s", "2m"
}

// ParseDuration converts the timeout string to time.Duration.
func (c SourceConfig) ParseDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Timeout)
}

// ExcelConfig locates the tabular output artifact. File is a template
// parameterized by the output version.
type ExcelConfig struct {
	Dir            string `json:"dir" yaml:"dir"`
	File           string `json:"file" yaml:"file"`
	BenchmarkSheet string `json:"benchmark_sheet" yaml:"benchmark_sheet"`
	MetadataSheet  string `json:"metadata_sheet" yaml:"metadata_sheet"`
}

// Path resolves the workbook path for an output version.
func (c ExcelConfig) Path(version string) string {
	return filepath.Join(c.Dir, fmt.Sprintf(c.File, version))
}

// DashboardConfig holds the analysis-facing parameters.
type DashboardConfig struct {
	RiskFreeRate       float64  `json:"risk_free_rate" yaml:"risk_free_rate"`
	TradingDaysPerYear int      `json:"trading_days_per_year" yaml:"trading_days_per_year"`
	DefaultTickers     []string `json:"default_tickers" yaml:"default_tickers"`
	MaxTickers         int      `json:"max_tickers" yaml:"max_tickers"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Main.OutputVersion == "" {
		return fmt.Errorf("main.output_version is required")
	}
	if !c.Main.ToExcel && !c.Main.ToSQLite {
		return fmt.Errorf("at least one of main.to_excel and main.to_sqlite must be set")
	}
	if c.Database.File == "" || !strings.Contains(c.Database.File, "%s") {
		return fmt.Errorf("database.file must be a template containing %%s")
	}
	if c.Database.PriceTable == "" || c.Database.MetadataTable == "" {
		return fmt.Errorf("database.price_table and database.metadata_table are required")
	}
	if c.Metadata.File == "" {
		return fmt.Errorf("metadata.file is required")
	}
	if c.Benchmark.TickerColumn == "" {
		return fmt.Errorf("benchmark.ticker_column is required")
	}
	if _, err := c.Benchmark.Source.ParseDuration(); err != nil {
		return fmt.Errorf("benchmark.source.timeout: %w", err)
	}
	if c.Main.ToExcel {
		if c.Excel.File == "" || !strings.Contains(c.Excel.File, "%s") {
			return fmt.Errorf("excel.file must be a template containing %%s")
		}
		if c.Excel.BenchmarkSheet == "" || c.Excel.MetadataSheet == "" {
			return fmt.Errorf("excel.benchmark_sheet and excel.metadata_sheet are required")
		}
	}
	if c.Dashboard.TradingDaysPerYear <= 0 {
		return fmt.Errorf("dashboard.trading_days_per_year must be positive")
	}
	if c.Dashboard.RiskFreeRate < 0 {
		return fmt.Errorf("dashboard.risk_free_rate must not be negative")
	}
	if c.Dashboard.MaxTickers <= 0 {
		return fmt.Errorf("dashboard.max_tickers must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Main: MainConfig{
			OutputVersion: "v1",
			ToExcel:       true,
			ToSQLite:      true,
			LogDir:        "logs",
		},
		Database: DatabaseConfig{
			Dir:           "data/db",
			File:          "benchlens_%s.db",
			PriceTable:    "benchmark",
			MetadataTable: "metadata",
		},
		Metadata: MetadataConfig{
			Dir:  "data/raw",
			File: "metadata.csv",
			Columns: normalize.ColumnGroups{
				String: []string{"Ticker", "Name", "Sector", "Country"},
				Drop:   []string{"Notes"},
				Rename: map[string]string{
					"Ticker":  "ticker",
					"Name":    "name",
					"Sector":  "sector",
					"Country": "country",
				},
			},
		},
		Benchmark: BenchmarkConfig{
			Name:          "CAC 40",
			ComponentsURL: "https://en.wikipedia.org/wiki/CAC_40",
			TickerColumn:  "Ticker",
			Source: SourceConfig{
				Timeout: "30s",
			},
			Columns: normalize.ColumnGroups{
				Date:    []string{"Date"},
				Numeric: []string{"Open", "High", "Low", "Close", "Volume"},
				String:  []string{"Ticker"},
				Rename: map[string]string{
					"Date":   "date",
					"Ticker": "ticker",
					"Open":   "open",
					"High":   "high",
					"Low":    "low",
					"Close":  "close",
					"Volume": "volume",
				},
			},
		},
		Excel: ExcelConfig{
			Dir:            "data/output",
			File:           "benchlens_%s.xlsx",
			BenchmarkSheet: "benchmark",
			MetadataSheet:  "metadata",
		},
		Dashboard: DashboardConfig{
			RiskFreeRate:       0.0,
			TradingDaysPerYear: 252,
			DefaultTickers:     []string{"MC.PA", "OR.PA", "AIR.PA"},
			MaxTickers:         3,
		},
	}
}
