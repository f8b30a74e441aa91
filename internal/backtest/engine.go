package backtest

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"trade-backtest-lab/internal/domain"
	"trade-backtest-lab/internal/stats"
)

// exposureEpsilon guards the exposure indicator against floating-point
// noise around zero.
const exposureEpsilon = 1e-9

// compute converts a realized position series and a return series into
// pnl, equity, and exposure columns plus the scalar statistics record.
//
// PnL at period t is the position at t-1 times the return at t: a
// position decided with information through day t-1 only earns the
// return realized from t-1 to t. pnl[0] is 0 since no prior position
// exists. Equity compounds (1+pnl) from a seed of 1.0; for bounded
// position sizes it stays positive, but extreme leverage times return
// can push it non-positive and the engine does not clamp that.
func compute(positions, returns []float64, annRet, riskAdj ReducerFunc) (pnl, equity, exposure []float64, st domain.Stats) {
	n := len(positions)
	pnl = make([]float64, n)
	exposure = make([]float64, n)
	for t := 1; t < n; t++ {
		pnl[t] = positions[t-1] * returns[t]
	}
	for i := 0; i < n; i++ {
		if math.Abs(positions[i]) > exposureEpsilon {
			exposure[i] = 1.0
		}
	}

	equity = make([]float64, n)
	acc := 1.0
	for i := 0; i < n; i++ {
		acc *= 1 + pnl[i]
		equity[i] = acc
	}

	st = domain.Stats{
		CAGR:            annRet(pnl),
		Sharpe:          riskAdj(pnl),
		MaxDrawdown:     stats.MaxDrawdown(equity),
		AverageExposure: stat.Mean(exposure, nil),
		FinalEquity:     equity[n-1],
		TradesApprox:    countFlips(positions),
	}
	return pnl, equity, exposure, st
}

// countFlips approximates the trade count as the number of periods the
// target position changed (opens, closes, and resizes all count).
func countFlips(positions []float64) int {
	count := 0
	for i := 1; i < len(positions); i++ {
		if math.Abs(positions[i]-positions[i-1]) > 0 {
			count++
		}
	}
	return count
}
