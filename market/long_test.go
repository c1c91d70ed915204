package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestLongReshape(t *testing.T) {
	t.Parallel()

	h := NewRawHistory()
	// A: two full days
	for _, f := range Fields {
		h.Add("A", f, Point{Date: day(1), Value: 10})
		h.Add("A", f, Point{Date: day(2), Value: 11})
	}
	// B: one day with only a close (partial missingness kept)
	h.Add("B", Close, Point{Date: day(2), Value: 20})
	// C: one fully-missing day (dropped)
	for _, f := range Fields {
		h.Add("C", f, Point{Date: day(1), Value: math.NaN()})
	}

	recs := h.Long()
	assert.Len(t, recs, 3)

	// sorted by date then ticker
	assert.Equal(t, "A", recs[0].Ticker)
	assert.True(t, recs[0].Date.Equal(day(1)))
	assert.Equal(t, "A", recs[1].Ticker)
	assert.Equal(t, "B", recs[2].Ticker)

	// partial record keeps NaN fields
	assert.Equal(t, 20.0, recs[2].Close)
	assert.True(t, math.IsNaN(recs[2].Open))
	assert.True(t, math.IsNaN(recs[2].Volume))
}

func TestLongRowCountMatchesCells(t *testing.T) {
	t.Parallel()

	h := NewRawHistory()
	h.Add("A", Close, Point{Date: day(1), Value: 1})
	h.Add("A", Close, Point{Date: day(2), Value: 2})
	h.Add("A", Open, Point{Date: day(2), Value: 2})
	h.Add("B", High, Point{Date: day(5), Value: 9})
	h.Add("B", Low, Point{Date: day(6), Value: math.NaN()})

	// (A,1), (A,2), (B,5); (B,6) is fully missing
	assert.Equal(t, 3, h.Cells())
	assert.Len(t, h.Long(), h.Cells())
}

func TestLongNoFabricatedRows(t *testing.T) {
	t.Parallel()

	// late IPO: B starts after A, no rows invented for B's gap
	h := NewRawHistory()
	h.Add("A", Close, Point{Date: day(1), Value: 1})
	h.Add("A", Close, Point{Date: day(2), Value: 2})
	h.Add("A", Close, Point{Date: day(3), Value: 3})
	h.Add("B", Close, Point{Date: day(3), Value: 30})

	recs := h.Long()
	assert.Len(t, recs, 4)
	for _, r := range recs {
		if r.Ticker == "B" {
			assert.True(t, r.Date.Equal(day(3)))
		}
	}
}

func TestLongDuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	h := NewRawHistory()
	h.Add("A", Close, Point{Date: day(1), Value: 1})
	h.Add("A", Close, Point{Date: day(1), Value: 99})

	recs := h.Long()
	assert.Len(t, recs, 1)
	assert.Equal(t, 1.0, recs[0].Close)
}
