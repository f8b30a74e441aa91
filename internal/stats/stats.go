// Package stats provides the summary-statistic reducers consumed by the
// backtest engine: annualized return, risk-adjusted ratio, and drawdown.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PeriodsPerYear is the annualization base for daily return series.
const PeriodsPerYear = 252

// AnnualizedReturn compounds a daily return series and annualizes it:
// prod(1+r)^(252/n) - 1. Returns NaN for an empty series.
func AnnualizedReturn(returns []float64) float64 {
	n := len(returns)
	if n == 0 {
		return math.NaN()
	}
	compounded := 1.0
	for _, r := range returns {
		compounded *= 1 + r
	}
	return math.Pow(compounded, PeriodsPerYear/float64(n)) - 1
}

// SharpeRatio is the annualized mean return divided by the annualized
// standard deviation of returns (zero risk-free rate). Returns NaN when
// the deviation is zero or the series is too short to estimate it.
func SharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	mean := stat.Mean(returns, nil)
	std := stat.StdDev(returns, nil)
	if std == 0 {
		return math.NaN()
	}
	return mean * PeriodsPerYear / (std * math.Sqrt(PeriodsPerYear))
}

// MaxDrawdown returns the worst peak-to-trough decline of an equity
// curve as a non-positive fraction: min(equity/runningMax - 1).
func MaxDrawdown(equity []float64) float64 {
	maxDD := 0.0
	peak := math.Inf(-1)
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		dd := e/peak - 1
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
