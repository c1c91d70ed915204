// Package market holds the core market-data value types shared by the
// ETL pipelines and the analytics engine.
package market

import (
	"math"
	"sort"
	"time"
)

// Field names one of the five daily price fields.
type Field string

const (
	Open   Field = "Open"
	High   Field = "High"
	Low    Field = "Low"
	Close  Field = "Close"
	Volume Field = "Volume"
)

// Fields lists the price fields in column order.
var Fields = []Field{Open, High, Low, Close, Volume}

// Point is one dated observation. A NaN value means the observation
// is missing for that date.
type Point struct {
	Date  time.Time
	Value float64
}

// RawHistory is the grouped output of a batched history fetch:
// one field/series map per instrument. Instruments may cover
// different date ranges (late IPOs simply have shorter series).
type RawHistory struct {
	Series map[string]map[Field][]Point
}

// NewRawHistory returns an empty history.
func NewRawHistory() *RawHistory {
	return &RawHistory{Series: map[string]map[Field][]Point{}}
}

// Add appends one observation for an instrument field.
func (h *RawHistory) Add(ticker string, field Field, p Point) {
	m, ok := h.Series[ticker]
	if !ok {
		m = map[Field][]Point{}
		h.Series[ticker] = m
	}
	m[field] = append(m[field], p)
}

// Tickers returns the instrument identifiers in sorted order.
func (h *RawHistory) Tickers() []string {
	out := make([]string, 0, len(h.Series))
	for t := range h.Series {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Cells counts the (date, instrument) pairs carrying at least one
// non-missing field. This is the row count Long is expected to produce.
func (h *RawHistory) Cells() int {
	n := 0
	for _, fields := range h.Series {
		seen := map[time.Time]bool{}
		for _, pts := range fields {
			for _, p := range pts {
				if !math.IsNaN(p.Value) && !seen[p.Date] {
					seen[p.Date] = true
					n++
				}
			}
		}
	}
	return n
}
