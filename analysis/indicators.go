package analysis

import (
	"errors"
	"math"
)

// ErrZeroVolatility is the degenerate-volatility condition: the sharpe
// ratio is undefined for a constant price series.
var ErrZeroVolatility = errors.New("volatility is zero, sharpe ratio cannot be calculated")

// Params are the annualization parameters for indicator computation.
type Params struct {
	RiskFreeRate       float64
	TradingDaysPerYear int
}

// Indicators is the per-series metric set.
type Indicators struct {
	CumulativeReturn     float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	MaxDrawdown          float64
}

// CumulativeReturn is last/first - 1 over the series. A single-point
// series is a self-ratio and returns 0; an empty series returns 0.
func CumulativeReturn(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	return prices[len(prices)-1]/prices[0] - 1
}

// DailyReturns is the percentage change between consecutive points,
// with the undefined first entry dropped.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, prices[i]/prices[i-1]-1)
	}
	return out
}

// AnnualizedVolatility is the sample standard deviation of daily
// returns scaled by the square root of the trading-day count. Fewer
// than two returns yield 0.
func AnnualizedVolatility(returns []float64, tradingDays int) float64 {
	return sampleStdev(returns) * math.Sqrt(float64(tradingDays))
}

// SharpeRatio is the annualized mean excess return over the annualized
// volatility. Zero volatility is the degenerate condition.
func SharpeRatio(returns []float64, p Params) (float64, error) {
	vol := AnnualizedVolatility(returns, p.TradingDaysPerYear)
	if vol == 0 {
		return 0, ErrZeroVolatility
	}
	mean := meanOf(returns) * float64(p.TradingDaysPerYear)
	return (mean - p.RiskFreeRate) / vol, nil
}

// MaxDrawdown is the most negative peak-to-trough decline relative to
// the running maximum. Always <= 0; exactly 0 for a non-decreasing
// series.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	peak := prices[0]
	worst := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		dd := (p - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// Compute derives the full indicator set for one price series.
func Compute(prices []float64, p Params) (Indicators, error) {
	returns := DailyReturns(prices)
	sharpe, err := SharpeRatio(returns, p)
	if err != nil {
		return Indicators{}, err
	}
	return Indicators{
		CumulativeReturn:     CumulativeReturn(prices),
		AnnualizedVolatility: AnnualizedVolatility(returns, p.TradingDaysPerYear),
		SharpeRatio:          sharpe,
		MaxDrawdown:          MaxDrawdown(prices),
	}, nil
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := meanOf(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
