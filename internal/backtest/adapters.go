package backtest

import (
	"trade-backtest-lab/internal/indicators"
	"trade-backtest-lab/internal/risk"
	"trade-backtest-lab/internal/signal"
	"trade-backtest-lab/internal/stats"
)

// RangeMeasureFunc computes a true-range style volatility measure
// aligned to the input index, NaN during warm-up.
type RangeMeasureFunc func(high, low, close []float64, window int) []float64

// ReducerFunc collapses a return series into a scalar statistic.
type ReducerFunc func(returns []float64) float64

// Adapters bundles the injected pure-function dependencies of the core:
// the indicator functions, the sizing curve, and the summary-statistic
// reducers. Tests substitute synthetic deterministic functions here so
// the engine can be exercised independently of the real implementations.
type Adapters struct {
	MovingAverage    signal.MovingAverageFunc
	Oscillator       signal.OscillatorFunc
	RangeMeasure     RangeMeasureFunc
	Leverage         risk.LeverageFunc
	AnnualizedReturn ReducerFunc
	RiskAdjusted     ReducerFunc
}

// DefaultAdapters wires the stock indicator, sizing, and statistics
// implementations.
func DefaultAdapters() Adapters {
	return Adapters{
		MovingAverage:    indicators.SMA,
		Oscillator:       indicators.RSI,
		RangeMeasure:     indicators.ATR,
		Leverage:         risk.TargetVolLeverage,
		AnnualizedReturn: stats.AnnualizedReturn,
		RiskAdjusted:     stats.SharpeRatio,
	}
}
