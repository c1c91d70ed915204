package analysis

import "time"

// Pair holds the two aligned price series an analysis request produces.
type Pair struct {
	Portfolio Series
	Benchmark Series
	Tickers   []string // the selection
	Universe  []string // every instrument behind the benchmark series
}

// Prepare builds the aligned portfolio and benchmark series for a date
// window and instrument selection:
//
//  1. filter to window and selection; empty means ErrNoData
//  2. pivot the selection, drop any date with a missing price;
//     empty means ErrNoCommonDates
//  3. pivot the full universe over the same window, same drop rule
//  4. restrict both pivots to their common dates
//  5. collapse each to its cross-sectional mean series
func (d *Dataset) Prepare(start, end time.Time, tickers []string) (*Pair, error) {
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	selection := d.PivotClose(start, end, tickers)
	if len(selection.Dates) == 0 {
		return nil, ErrNoData
	}

	selection = selection.DropIncomplete()
	if len(selection.Dates) == 0 {
		return nil, ErrNoCommonDates
	}

	universe := d.Tickers()
	benchmark := d.PivotClose(start, end, universe).DropIncomplete()

	common := CommonDates(selection, benchmark)
	if len(common) == 0 {
		return nil, ErrNoCommonDates
	}
	selection = selection.Restrict(common)
	benchmark = benchmark.Restrict(common)

	return &Pair{
		Portfolio: selection.MeanAcross(),
		Benchmark: benchmark.MeanAcross(),
		Tickers:   selection.Tickers,
		Universe:  universe,
	}, nil
}
