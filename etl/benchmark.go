package etl

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"benchlens/config"
	"benchlens/logger"
	"benchlens/market"
	"benchlens/normalize"
	"benchlens/source"
)

// Benchmark is the price-history pipeline: the instrument list comes
// from the metadata flat file, the history from the remote source, and
// the reshape from wide grouped layout to long form is the transform
// core.
type Benchmark struct {
	cfg    *config.Config
	log    *logrus.Entry
	client *source.Client

	raw         *market.RawHistory
	transformed *normalize.Frame
}

// NewBenchmark builds the benchmark pipeline around a history client.
func NewBenchmark(cfg *config.Config, client *source.Client) *Benchmark {
	return &Benchmark{
		cfg:    cfg,
		log:    logger.New("etl.benchmark", cfg.Main.LogDir, "etl_benchmark.log"),
		client: client,
	}
}

// Extract reads the instrument list from the metadata flat file and
// issues one batched full-history request against the remote source.
func (p *Benchmark) Extract(ctx context.Context) error {
	path := p.cfg.Metadata.Path()
	p.log.WithField("path", path).Info("extracting benchmark tickers")

	meta, err := normalize.ReadCSVFile(path)
	if err != nil {
		p.log.WithError(err).Error("reading metadata file failed")
		return err
	}

	col := p.cfg.Benchmark.TickerColumn
	idx := meta.Col(col)
	if idx < 0 {
		p.log.WithField("column", col).Error("ticker column not found in metadata")
		return fmt.Errorf("%w: ticker column %q", ErrMissingColumn, col)
	}

	var tickers []string
	seen := map[string]bool{}
	for _, row := range meta.Rows {
		t := row[idx].Format()
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tickers = append(tickers, t)
	}
	p.log.WithField("count", len(tickers)).Info("tickers found for benchmark")

	p.log.WithField("benchmark", p.cfg.Benchmark.Name).Info("fetching history from source")
	raw, err := p.client.History(ctx, source.HistoryRequest{
		Symbols:  tickers,
		Range:    source.RangeMax,
		Adjusted: true,
	})
	if err != nil {
		p.log.WithError(err).Error("fetching history failed")
		return err
	}

	p.raw = raw
	p.log.WithFields(logger.Fields{
		"instruments": len(raw.Series),
		"cells":       raw.Cells(),
	}).Info("raw history shape")
	return nil
}

// Transform unstacks the grouped history into long form, drops
// fully-missing (date, instrument) pairs, and applies the benchmark
// column groups.
func (p *Benchmark) Transform() error {
	if p.raw == nil {
		p.log.Error("extract() must be called before transform()")
		return ErrNotExtracted
	}

	p.log.Info("transforming benchmark history")
	records := p.raw.Long()

	f := normalize.New("Date", "Ticker", "Open", "High", "Low", "Close", "Volume")
	for _, r := range records {
		if err := f.Append(
			normalize.TimeCell(r.Date),
			normalize.TextCell(r.Ticker),
			numberOrMissing(r.Open),
			numberOrMissing(r.High),
			numberOrMissing(r.Low),
			numberOrMissing(r.Close),
			numberOrMissing(r.Volume),
		); err != nil {
			p.log.WithError(err).Error("building long frame failed")
			return err
		}
	}

	p.transformed = p.cfg.Benchmark.Columns.Apply(f)

	rows, cols := p.transformed.Shape()
	p.log.WithFields(logger.Fields{"rows": rows, "cols": cols}).Info("transformed benchmark shape")
	return nil
}

// Load writes the transformed frame to the configured sinks.
func (p *Benchmark) Load() error {
	if p.transformed == nil {
		p.log.Error("transform() must be called before load()")
		return ErrNotTransformed
	}
	p.log.Info("loading benchmark history")
	return load(p.cfg, p.log, p.cfg.Excel.BenchmarkSheet, p.cfg.Database.PriceTable, p.transformed)
}

// Transformed exposes the transformed frame, or nil before Transform.
func (p *Benchmark) Transformed() *normalize.Frame {
	return p.transformed
}

func numberOrMissing(v float64) normalize.Cell {
	if math.IsNaN(v) {
		return normalize.Cell{}
	}
	return normalize.NumberCell(v)
}
