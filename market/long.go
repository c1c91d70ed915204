package market

import (
	"math"
	"sort"
	"time"
)

// LongRecord is one row of the long-form price table: one
// (date, instrument) pair with the five price fields as columns.
// Missing fields are NaN.
type LongRecord struct {
	Date   time.Time
	Ticker string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// AllMissing reports whether every price field of the record is NaN.
func (r LongRecord) AllMissing() bool {
	for _, v := range []float64{r.Open, r.High, r.Low, r.Close, r.Volume} {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Long unstacks the grouped history into long form: one record per
// (date, instrument) pair. Pairs where all five fields are missing are
// dropped; partially missing pairs are kept. Duplicate observations for
// the same (date, instrument, field) keep the first value seen. Output
// is sorted by date, then ticker.
func (h *RawHistory) Long() []LongRecord {
	var out []LongRecord

	for _, ticker := range h.Tickers() {
		fields := h.Series[ticker]

		byDate := map[time.Time]*LongRecord{}
		for _, f := range Fields {
			for _, p := range fields[f] {
				rec, ok := byDate[p.Date]
				if !ok {
					rec = &LongRecord{
						Date:   p.Date,
						Ticker: ticker,
						Open:   math.NaN(),
						High:   math.NaN(),
						Low:    math.NaN(),
						Close:  math.NaN(),
						Volume: math.NaN(),
					}
					byDate[p.Date] = rec
				}
				switch f {
				case Open:
					if math.IsNaN(rec.Open) {
						rec.Open = p.Value
					}
				case High:
					if math.IsNaN(rec.High) {
						rec.High = p.Value
					}
				case Low:
					if math.IsNaN(rec.Low) {
						rec.Low = p.Value
					}
				case Close:
					if math.IsNaN(rec.Close) {
						rec.Close = p.Value
					}
				case Volume:
					if math.IsNaN(rec.Volume) {
						rec.Volume = p.Value
					}
				}
			}
		}

		for _, rec := range byDate {
			if rec.AllMissing() {
				continue
			}
			out = append(out, *rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}
