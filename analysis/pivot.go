package analysis

import (
	"math"
	"sort"
	"time"
)

func nan() float64 { return math.NaN() }

// Pivot is a date-indexed, instrument-keyed matrix of closing prices.
// Values[i][j] is the close of Tickers[j] on Dates[i]; NaN is missing.
// Pivots are derived per request and never persisted.
type Pivot struct {
	Dates   []time.Time
	Tickers []string
	Values  [][]float64
}

// PivotClose builds the close-price pivot for the given window and
// instrument subset. Duplicates in the subset collapse to one column;
// dates are ascending and tickers sorted.
func (d *Dataset) PivotClose(start, end time.Time, tickers []string) *Pivot {
	seen := map[string]bool{}
	keep := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if !seen[t] {
			seen[t] = true
			keep = append(keep, t)
		}
	}
	sort.Strings(keep)

	in := map[string]int{}
	for j, t := range keep {
		in[t] = j
	}

	byDate := map[time.Time][]float64{}
	for _, r := range d.rows {
		j, ok := in[r.Ticker]
		if !ok || r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		vals, ok := byDate[r.Date]
		if !ok {
			vals = make([]float64, len(keep))
			for k := range vals {
				vals[k] = nan()
			}
			byDate[r.Date] = vals
		}
		vals[j] = r.Close
	}

	dates := make([]time.Time, 0, len(byDate))
	for dt := range byDate {
		dates = append(dates, dt)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	p := &Pivot{Dates: dates, Tickers: keep}
	for _, dt := range dates {
		p.Values = append(p.Values, byDate[dt])
	}
	return p
}

// DropIncomplete removes every date where any instrument lacks a
// price. This is the holiday/survivorship guard: a partial quote day
// never contributes to either series.
func (p *Pivot) DropIncomplete() *Pivot {
	out := &Pivot{Tickers: p.Tickers}
	for i, row := range p.Values {
		complete := true
		for _, v := range row {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if complete {
			out.Dates = append(out.Dates, p.Dates[i])
			out.Values = append(out.Values, row)
		}
	}
	return out
}

// Restrict keeps only the given dates, preserving order.
func (p *Pivot) Restrict(dates []time.Time) *Pivot {
	keep := map[time.Time]bool{}
	for _, d := range dates {
		keep[d] = true
	}
	out := &Pivot{Tickers: p.Tickers}
	for i, d := range p.Dates {
		if keep[d] {
			out.Dates = append(out.Dates, d)
			out.Values = append(out.Values, p.Values[i])
		}
	}
	return out
}

// CommonDates intersects two pivots' date indices, ascending.
func CommonDates(a, b *Pivot) []time.Time {
	inB := map[time.Time]bool{}
	for _, d := range b.Dates {
		inB[d] = true
	}
	var out []time.Time
	for _, d := range a.Dates {
		if inB[d] {
			out = append(out, d)
		}
	}
	return out
}

// Series is a dated scalar price series.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// MeanAcross collapses the pivot cross-sectionally: the unweighted
// arithmetic mean across instruments, per date. Dates whose mean is
// not finite are dropped.
func (p *Pivot) MeanAcross() Series {
	var s Series
	for i, row := range p.Values {
		sum, n := 0.0, 0
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			continue
		}
		s.Dates = append(s.Dates, p.Dates[i])
		s.Values = append(s.Values, sum/float64(n))
	}
	return s
}
