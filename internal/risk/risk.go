// Package risk scales a directional signal by volatility-targeted
// leverage.
package risk

import (
	"fmt"
	"math"

	"trade-backtest-lab/internal/domain"
	"trade-backtest-lab/internal/timeseries"
)

// PeriodsPerYear is the annualization base for daily data.
const PeriodsPerYear = 252

// MaxLeverage caps the sizing curve so a quiet-volatility stretch cannot
// produce unbounded exposure.
const MaxLeverage = 5.0

// LeverageFunc maps realized volatility and a target volatility to a
// leverage series aligned to the input, NaN where undefined.
type LeverageFunc func(realizedVol []float64, targetVol float64) []float64

// RealizedVol computes the trailing sample standard deviation of returns
// over the window, annualized by sqrt(252). The first window-1 entries
// are NaN.
func RealizedVol(returns []float64, window int) []float64 {
	out := timeseries.RollingStd(returns, window)
	scale := math.Sqrt(PeriodsPerYear)
	for i, v := range out {
		if !math.IsNaN(v) {
			out[i] = v * scale
		}
	}
	return out
}

// TargetVolLeverage is the default sizing curve: targetVol divided by
// realized volatility, capped at MaxLeverage. Undefined input stays NaN.
func TargetVolLeverage(realizedVol []float64, targetVol float64) []float64 {
	out := make([]float64, len(realizedVol))
	for i, v := range realizedVol {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		lev := targetVol / (v + 1e-12)
		if lev > MaxLeverage {
			lev = MaxLeverage
		}
		out[i] = lev
	}
	return out
}

// Size applies the sizing function to the realized volatility series and
// scales the signal by it. Undefined leverage (insufficient history) is
// treated as 0, so no position is taken until enough history exists. A
// sizing function returning a series of the wrong length is reported as
// ErrMisalignedInput.
func Size(sig, realizedVol []float64, targetVol float64, leverage LeverageFunc) (lev, raw []float64, err error) {
	lev = leverage(realizedVol, targetVol)
	if len(lev) != len(sig) {
		return nil, nil, fmt.Errorf("%w: sizing adapter returned %d periods, want %d",
			domain.ErrMisalignedInput, len(lev), len(sig))
	}
	lev = timeseries.Filled(lev, 0)
	raw = make([]float64, len(sig))
	for i := range sig {
		raw[i] = sig[i] * lev[i]
	}
	return lev, raw, nil
}
