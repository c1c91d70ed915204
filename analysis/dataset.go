// Package analysis derives comparable portfolio and benchmark price
// series from the merged view and computes performance indicators on
// them.
package analysis

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"benchlens/normalize"
)

// Data-shape conditions the caller is expected to handle.
var (
	ErrNoData        = errors.New("no data for the selected period and tickers")
	ErrNoCommonDates = errors.New("no common trading date for the selection")
	ErrNoTickers     = errors.New("no tickers selected")
)

// Row is one merged observation used by the engine.
type Row struct {
	Date   time.Time
	Ticker string
	Close  float64 // NaN when missing
}

// Dataset wraps the merged price/metadata view. It is rebuilt per
// analysis request; nothing is cached between requests.
type Dataset struct {
	rows  []Row
	frame *normalize.Frame
}

// NewDataset validates and indexes a merged frame. The frame must
// carry date, ticker and close columns.
func NewDataset(f *normalize.Frame) (*Dataset, error) {
	var missing []string
	for _, c := range []string{"date", "ticker", "close"} {
		if f.Col(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("analysis: merged frame missing columns %v", missing)
	}

	di, ti, ci := f.Col("date"), f.Col("ticker"), f.Col("close")
	rows := make([]Row, 0, len(f.Rows))
	for _, r := range f.Rows {
		if r[di].Kind != normalize.Timestamp || r[ti].Kind != normalize.Text {
			continue
		}
		row := Row{Date: r[di].When, Ticker: r[ti].Str}
		if r[ci].Kind == normalize.Number {
			row.Close = r[ci].Num
		} else {
			row.Close = nan()
		}
		rows = append(rows, row)
	}
	return &Dataset{rows: rows, frame: f}, nil
}

// Bounds returns the earliest and latest dates in the data.
func (d *Dataset) Bounds() (min, max time.Time) {
	for i, r := range d.rows {
		if i == 0 || r.Date.Before(min) {
			min = r.Date
		}
		if i == 0 || r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}

// Tickers returns every distinct instrument in the data, sorted.
func (d *Dataset) Tickers() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range d.rows {
		if !seen[r.Ticker] {
			seen[r.Ticker] = true
			out = append(out, r.Ticker)
		}
	}
	sort.Strings(out)
	return out
}

// TickersInPeriod returns the distinct instruments having at least one
// row with date in [start, end] inclusive, sorted. An empty result
// means no trading occurred in the window and the caller must not
// proceed to indicator computation.
func (d *Dataset) TickersInPeriod(start, end time.Time) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range d.rows {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		if !seen[r.Ticker] {
			seen[r.Ticker] = true
			out = append(out, r.Ticker)
		}
	}
	sort.Strings(out)
	return out
}

// Breakdown returns the value proportions of a descriptive attribute
// over the rows belonging to the given tickers. Missing cells are
// excluded.
func (d *Dataset) Breakdown(column string, tickers []string) (map[string]float64, error) {
	ci := d.frame.Col(column)
	if ci < 0 {
		return nil, fmt.Errorf("analysis: column %q not in merged frame", column)
	}
	ti := d.frame.Col("ticker")

	in := map[string]bool{}
	for _, t := range tickers {
		in[t] = true
	}

	counts := map[string]int{}
	total := 0
	for _, row := range d.frame.Rows {
		if row[ti].Kind != normalize.Text || !in[row[ti].Str] {
			continue
		}
		if row[ci].IsEmpty() {
			continue
		}
		counts[row[ci].Format()]++
		total++
	}

	out := map[string]float64{}
	for k, n := range counts {
		out[k] = float64(n) / float64(total)
	}
	return out, nil
}
