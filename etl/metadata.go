package etl

import (
	"github.com/sirupsen/logrus"

	"benchlens/config"
	"benchlens/logger"
	"benchlens/normalize"
)

// Metadata is the reference-data pipeline: one row per instrument from
// the configured flat file.
type Metadata struct {
	cfg *config.Config
	log *logrus.Entry

	raw         *normalize.Frame
	transformed *normalize.Frame
}

// NewMetadata builds the metadata pipeline.
func NewMetadata(cfg *config.Config) *Metadata {
	return &Metadata{
		cfg: cfg,
		log: logger.New("etl.metadata", cfg.Main.LogDir, "etl_metadata.log"),
	}
}

// Extract reads the metadata flat file into the raw frame.
func (p *Metadata) Extract() error {
	path := p.cfg.Metadata.Path()
	p.log.WithField("path", path).Info("extracting metadata")

	raw, err := normalize.ReadCSVFile(path)
	if err != nil {
		p.log.WithError(err).Error("extract failed")
		return err
	}
	p.raw = raw

	rows, cols := raw.Shape()
	p.log.WithFields(logger.Fields{"rows": rows, "cols": cols}).Info("raw metadata shape")
	return nil
}

// Transform applies the metadata column groups to the extracted frame.
// Duplicate instrument identifiers are logged as a warning: they would
// silently fan out the merged view downstream.
func (p *Metadata) Transform() error {
	if p.raw == nil {
		p.log.Error("extract() must be called before transform()")
		return ErrNotExtracted
	}

	p.log.Info("transforming metadata")
	p.transformed = p.cfg.Metadata.Columns.Apply(p.raw)

	if dupes := duplicateKeys(p.transformed, p.tickerColumn()); len(dupes) > 0 {
		p.log.WithField("tickers", dupes).Warn("duplicate instrument identifiers in metadata")
	}

	rows, cols := p.transformed.Shape()
	p.log.WithFields(logger.Fields{"rows": rows, "cols": cols}).Info("transformed metadata shape")
	return nil
}

// Load writes the transformed frame to the configured sinks.
func (p *Metadata) Load() error {
	if p.transformed == nil {
		p.log.Error("transform() must be called before load()")
		return ErrNotTransformed
	}
	p.log.Info("loading metadata")
	return load(p.cfg, p.log, p.cfg.Excel.MetadataSheet, p.cfg.Database.MetadataTable, p.transformed)
}

// Transformed exposes the transformed frame, or nil before Transform.
func (p *Metadata) Transformed() *normalize.Frame {
	return p.transformed
}

// tickerColumn resolves the post-rename name of the configured ticker
// column, used for the duplicate check on the transformed frame.
func (p *Metadata) tickerColumn() string {
	raw := p.cfg.Benchmark.TickerColumn
	if n, ok := p.cfg.Metadata.Columns.Rename[raw]; ok {
		return n
	}
	return raw
}

func duplicateKeys(f *normalize.Frame, col string) []string {
	i := f.Col(col)
	if i < 0 {
		return nil
	}
	seen := map[string]int{}
	var dupes []string
	for _, row := range f.Rows {
		k := row[i].Format()
		if k == "" {
			continue
		}
		seen[k]++
		if seen[k] == 2 {
			dupes = append(dupes, k)
		}
	}
	return dupes
}
