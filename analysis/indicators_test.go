package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var params = Params{RiskFreeRate: 0.0, TradingDaysPerYear: 252}

func TestCumulativeReturn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{name: "up", prices: []float64{100, 110}, want: 0.10},
		{name: "down", prices: []float64{100, 90}, want: -0.10},
		{name: "flat", prices: []float64{100, 100, 100}, want: 0},
		{name: "single_point_self_ratio", prices: []float64{42}, want: 0},
		{name: "empty", prices: nil, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, CumulativeReturn(tt.prices), 1e-12)
		})
	}
}

func TestDailyReturns(t *testing.T) {
	t.Parallel()

	rets := DailyReturns([]float64{100, 110, 99})
	require.Len(t, rets, 2)
	assert.InDelta(t, 0.10, rets[0], 1e-12)
	assert.InDelta(t, -0.10, rets[1], 1e-12)

	assert.Nil(t, DailyReturns([]float64{100}))
}

func TestAnnualizedVolatility(t *testing.T) {
	t.Parallel()

	// sample stdev of {0.1, -0.1} is sqrt(0.02)
	rets := []float64{0.1, -0.1}
	want := math.Sqrt(0.02) * math.Sqrt(252)
	assert.InDelta(t, want, AnnualizedVolatility(rets, 252), 1e-12)

	assert.Zero(t, AnnualizedVolatility([]float64{0.1}, 252))
}

func TestSharpeRatioDegenerateVolatility(t *testing.T) {
	t.Parallel()

	// constant price series has zero variance in returns
	rets := DailyReturns([]float64{100, 100, 100, 100})
	_, err := SharpeRatio(rets, params)
	assert.ErrorIs(t, err, ErrZeroVolatility)
}

func TestSharpeRatio(t *testing.T) {
	t.Parallel()

	rets := []float64{0.01, -0.005, 0.02, 0.0}
	vol := AnnualizedVolatility(rets, 252)
	mean := (0.01 - 0.005 + 0.02 + 0.0) / 4 * 252

	got, err := SharpeRatio(rets, params)
	require.NoError(t, err)
	assert.InDelta(t, mean/vol, got, 1e-12)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{name: "simple", prices: []float64{100, 80, 90}, want: -0.20},
		{name: "later_peak", prices: []float64{100, 120, 90, 110}, want: -0.25},
		{name: "monotonic_non_decreasing", prices: []float64{100, 100, 105, 110}, want: 0},
		{name: "empty", prices: nil, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MaxDrawdown(tt.prices)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.LessOrEqual(t, got, 0.0)
		})
	}
}

func TestComputeComparisonGap(t *testing.T) {
	t.Parallel()

	pair := &Pair{
		Portfolio: Series{Values: []float64{100, 102, 101, 104}},
		Benchmark: Series{Values: []float64{100, 101, 100, 101}},
	}

	cmp, err := Compare(pair, params)
	require.NoError(t, err)

	gap := cmp.Gap()
	assert.InDelta(t, cmp.Portfolio.CumulativeReturn-cmp.Benchmark.CumulativeReturn, gap.CumulativeReturn, 1e-12)
	assert.InDelta(t, cmp.Portfolio.SharpeRatio-cmp.Benchmark.SharpeRatio, gap.SharpeRatio, 1e-12)
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12.34, Percent(0.1234))
	assert.Equal(t, -25.0, Percent(-0.25))
}

func TestFormatBreakdown(t *testing.T) {
	t.Parallel()

	out := FormatBreakdown("sector", map[string]float64{
		"Tech":   0.25,
		"Energy": 0.50,
		"Luxury": 0.25,
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Breakdown: sector")
	// largest share first, ties broken by name
	assert.Contains(t, lines[1], "Energy")
	assert.Contains(t, lines[1], "50.00")
	assert.Contains(t, lines[2], "Luxury")
	assert.Contains(t, lines[3], "Tech")
}
