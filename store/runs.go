package store

import (
	"time"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS etl_runs (
	run_id TEXT PRIMARY KEY,
	dataset TEXT NOT NULL,
	rows INTEGER NOT NULL,
	cols INTEGER NOT NULL,
	started DATETIME NOT NULL,
	finished DATETIME NOT NULL
);
`

// Run records the provenance of one ETL load.
type Run struct {
	ID       string
	Dataset  string
	Rows     int
	Cols     int
	Started  time.Time
	Finished time.Time
}

// RecordRun appends a run row, creating the etl_runs table on first use.
func (s *DB) RecordRun(r Run) error {
	if _, err := s.db.Exec(runsSchema); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO etl_runs (run_id, dataset, rows, cols, started, finished)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Dataset, r.Rows, r.Cols, r.Started, r.Finished,
	)
	return err
}

// ListRuns returns all recorded runs, oldest first.
func (s *DB) ListRuns() ([]Run, error) {
	if _, err := s.db.Exec(runsSchema); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
		SELECT run_id, dataset, rows, cols, started, finished
		FROM etl_runs
		ORDER BY started ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Dataset, &r.Rows, &r.Cols, &r.Started, &r.Finished); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
