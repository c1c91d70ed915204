package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Comparison holds the side-by-side indicator sets for one request.
type Comparison struct {
	Portfolio Indicators
	Benchmark Indicators
	Pair      *Pair
}

// Compare computes indicators on both aligned series independently.
func Compare(pair *Pair, p Params) (*Comparison, error) {
	pf, err := Compute(pair.Portfolio.Values, p)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	bm, err := Compute(pair.Benchmark.Values, p)
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}
	return &Comparison{Portfolio: pf, Benchmark: bm, Pair: pair}, nil
}

// Gap is the arithmetic portfolio-minus-benchmark difference per
// indicator.
func (c *Comparison) Gap() Indicators {
	return Indicators{
		CumulativeReturn:     c.Portfolio.CumulativeReturn - c.Benchmark.CumulativeReturn,
		AnnualizedVolatility: c.Portfolio.AnnualizedVolatility - c.Benchmark.AnnualizedVolatility,
		SharpeRatio:          c.Portfolio.SharpeRatio - c.Benchmark.SharpeRatio,
		MaxDrawdown:          c.Portfolio.MaxDrawdown - c.Benchmark.MaxDrawdown,
	}
}

// Percent formats a decimal as a percentage with two decimals.
func Percent(v float64) float64 {
	return math.Round(v*10000) / 100
}

// Format renders the comparison as a text table: portfolio, benchmark
// and gap per indicator.
func (c *Comparison) Format() string {
	gap := c.Gap()

	var b strings.Builder
	fmt.Fprintf(&b, "%-28s %12s %12s %12s\n", "Indicator", "Portfolio", "Benchmark", "Gap")
	row := func(label string, p, m, g float64, pct bool) {
		if pct {
			fmt.Fprintf(&b, "%-28s %12.2f %12.2f %12.2f\n", label, Percent(p), Percent(m), Percent(g))
			return
		}
		fmt.Fprintf(&b, "%-28s %12.4f %12.4f %12.4f\n", label, p, m, g)
	}
	row("Cumulative Performance (%)", c.Portfolio.CumulativeReturn, c.Benchmark.CumulativeReturn, gap.CumulativeReturn, true)
	row("Annualized Volatility (%)", c.Portfolio.AnnualizedVolatility, c.Benchmark.AnnualizedVolatility, gap.AnnualizedVolatility, true)
	row("Sharpe Ratio", c.Portfolio.SharpeRatio, c.Benchmark.SharpeRatio, gap.SharpeRatio, false)
	row("Max Drawdown (%)", c.Portfolio.MaxDrawdown, c.Benchmark.MaxDrawdown, gap.MaxDrawdown, true)
	return b.String()
}

// FormatBreakdown renders attribute-value proportions as a text
// table, largest share first with ties broken by name.
func FormatBreakdown(column string, shares map[string]float64) string {
	keys := make([]string, 0, len(shares))
	for k := range shares {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if shares[keys[i]] != shares[keys[j]] {
			return shares[keys[i]] > shares[keys[j]]
		}
		return keys[i] < keys[j]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%-28s %12s\n", "Breakdown: "+column, "Share (%)")
	for _, k := range keys {
		fmt.Fprintf(&b, "%-28s %12.2f\n", k, Percent(shares[k]))
	}
	return b.String()
}

// FormatSeries renders the aligned two-column evolution table.
func (c *Comparison) FormatSeries() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %12s %12s\n", "Date", "Portfolio", "Benchmark")
	for i, d := range c.Pair.Portfolio.Dates {
		fmt.Fprintf(&b, "%-12s %12.4f %12.4f\n",
			d.Format("2006-01-02"), c.Pair.Portfolio.Values[i], c.Pair.Benchmark.Values[i])
	}
	return b.String()
}
