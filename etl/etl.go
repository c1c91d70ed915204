// Package etl implements the extract/transform/load pipelines feeding
// the relational store: reference metadata from a flat file and
// benchmark price history from the remote source.
package etl

import (
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"benchlens/config"
	"benchlens/logger"
	"benchlens/normalize"
	"benchlens/store"
)

// Sequencing errors: a stage was invoked before its prerequisite ran.
var (
	ErrNotExtracted   = errors.New("no data to transform: extract has not run")
	ErrNotTransformed = errors.New("no data to load: transform has not run")
)

// ErrMissingColumn reports a required column absent from an input file.
var ErrMissingColumn = errors.New("required column missing")

// load writes a transformed frame to the configured sinks (sheetName
// keys the Excel section, tableName the store table) and records run
// provenance in the store. Shared by both pipelines.
func load(cfg *config.Config, log *logrus.Entry, sheetName, tableName string, frame *normalize.Frame) error {
	started := time.Now().UTC()

	if cfg.Main.ToExcel {
		path := cfg.Excel.Path(cfg.Main.OutputVersion)
		log.WithField("path", path).Info("exporting to excel")
		if err := store.FramesToExcel(map[string]*normalize.Frame{sheetName: frame}, path); err != nil {
			log.WithError(err).Error("excel export failed")
			return err
		}
		if sheets, err := store.SheetNames(path); err == nil {
			log.WithField("sheets", sheets).Info("excel export done")
		}
	}

	if cfg.Main.ToSQLite {
		path := cfg.Database.Path(cfg.Main.OutputVersion)
		log.WithField("path", path).Info("exporting to sqlite")
		if err := store.FramesToDB(map[string]*normalize.Frame{tableName: frame}, path, false, false); err != nil {
			log.WithError(err).Error("sqlite export failed")
			return err
		}

		rows, cols := frame.Shape()
		run := store.Run{
			ID:       ulid.Make().String(),
			Dataset:  tableName,
			Rows:     rows,
			Cols:     cols,
			Started:  started,
			Finished: time.Now().UTC(),
		}
		if err := recordRun(path, run); err != nil {
			log.WithError(err).Error("recording etl run failed")
			return err
		}
		if tables, err := store.TableNames(path); err == nil {
			log.WithFields(logger.Fields{"tables": tables, "run_id": run.ID}).Info("sqlite export done")
		}
	}

	return nil
}

func recordRun(path string, run store.Run) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.RecordRun(run)
}
