package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV parses a header-rowed CSV stream into a frame. Every cell
// comes in as text; empty fields are missing. Typing is the
// normalizer's job, not the reader's.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	f := New(header...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		cells := make([]Cell, len(rec))
		for i, v := range rec {
			if v == "" {
				continue
			}
			cells[i] = TextCell(v)
		}
		if err := f.Append(cells...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReadCSVFile reads a CSV file into a frame.
func ReadCSVFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadCSV(fh)
}
