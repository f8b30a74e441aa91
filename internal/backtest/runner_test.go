package backtest

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-backtest-lab/internal/domain"
)

const dayMs = int64(86_400_000)

// makeBars builds a daily series from close prices, with a small
// synthetic high/low range around each close.
func makeBars(closes []float64) []*domain.Bar {
	bars := make([]*domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = &domain.Bar{
			TimestampMs: int64(i+1) * dayMs,
			Open:        c,
			High:        c * 1.01,
			Low:         c * 0.99,
			Close:       c,
			AdjClose:    c,
			Volume:      1_000_000,
		}
	}
	return bars
}

func trendingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func constantCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100
	}
	return out
}

func newTestRunner() *Runner {
	return NewRunner(DefaultAdapters(), zerolog.Nop())
}

func TestRun_EmptySeries(t *testing.T) {
	runner := newTestRunner()
	cfg := domain.StrategyConfig{Variant: domain.StrategySMACrossover}

	_, err := runner.Run(context.Background(), nil, cfg, RunOptions{})
	require.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestRun_InvalidStrategy(t *testing.T) {
	runner := newTestRunner()
	cfg := domain.StrategyConfig{Variant: "BOGUS"}

	_, err := runner.Run(context.Background(), makeBars(trendingCloses(10)), cfg, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOGUS")
}

func TestRun_CrossoverTrending(t *testing.T) {
	runner := newTestRunner()
	bars := makeBars(trendingCloses(60))
	cfg := domain.StrategyConfig{Variant: domain.StrategySMACrossover, FastWindow: 2, SlowWindow: 3}

	result, err := runner.Run(context.Background(), bars, cfg, RunOptions{})
	require.NoError(t, err)

	table := result.Table
	require.Equal(t, len(bars), table.Len())
	for _, col := range [][]float64{table.Return, table.Signal, table.Position, table.PnL, table.Equity, table.Exposure, table.RealizedVol} {
		require.Equal(t, len(bars), len(col))
	}

	assert.Zero(t, table.PnL[0], "no prior position exists at the first period")
	assert.Equal(t, 1.0, table.Equity[0])
	for i, v := range table.Signal {
		assert.True(t, v == 0.0 || v == 1.0, "signal[%d] = %f not binary", i, v)
	}

	// Volatility warm-up sizes the first 19 periods to zero.
	for i := 0; i < 19; i++ {
		assert.Zero(t, table.Position[i], "position[%d] during warm-up", i)
	}
	assert.Greater(t, result.Stats.AverageExposure, 0.0)
	assert.LessOrEqual(t, result.Stats.MaxDrawdown, 0.0)
	assert.Equal(t, table.Equity[len(bars)-1], result.Stats.FinalEquity)
}

func TestRun_ConstantPrice(t *testing.T) {
	runner := newTestRunner()
	bars := makeBars(constantCloses(120))
	stopMult := 3.0
	cfg := domain.StrategyConfig{Variant: domain.StrategySMACrossover}

	result, err := runner.Run(context.Background(), bars, cfg, RunOptions{StopMultiplier: &stopMult})
	require.NoError(t, err)

	// All returns are zero, so pnl is zero and equity pinned at 1
	// regardless of strategy or stop settings.
	for i := range bars {
		assert.Zero(t, result.Table.PnL[i])
		assert.Equal(t, 1.0, result.Table.Equity[i])
	}
	assert.Zero(t, result.Stats.CAGR)
	assert.Zero(t, result.Stats.MaxDrawdown)
	assert.Equal(t, 1.0, result.Stats.FinalEquity)
	assert.True(t, math.IsNaN(result.Stats.Sharpe), "zero-deviation pnl has no Sharpe")
}

func TestRun_TrailingStopForcesExit(t *testing.T) {
	// Unit leverage isolates the stop machine from volatility warm-up.
	adapters := DefaultAdapters()
	adapters.Leverage = func(realizedVol []float64, _ float64) []float64 {
		out := make([]float64, len(realizedVol))
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	adapters.RangeMeasure = func(_, _, close []float64, _ int) []float64 {
		out := make([]float64, len(close))
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	runner := NewRunner(adapters, zerolog.Nop())

	bars := makeBars([]float64{100, 101, 102, 103, 104, 90, 89})
	stopMult := 3.0
	cfg := domain.StrategyConfig{Variant: domain.StrategySMACrossover, FastWindow: 2, SlowWindow: 3}

	result, err := runner.Run(context.Background(), bars, cfg, RunOptions{StopMultiplier: &stopMult})
	require.NoError(t, err)

	table := result.Table
	// Signal turns long at index 2, so the sustained entry lands at
	// index 3 with stop = 103 - 3*1, ratcheting to 101 behind the rise.
	assert.InDelta(t, 100.0, table.StopLevel[3], 1e-9)
	assert.InDelta(t, 101.0, table.StopLevel[4], 1e-9)
	assert.InDelta(t, 101.0, table.StopLevel[5], 1e-9)

	// The crash closes at 90 <= 101: realized position forced to zero.
	assert.Zero(t, table.Position[5])
}

func TestRun_MisalignedAdapters(t *testing.T) {
	short := func(values []float64, _ int) []float64 {
		return make([]float64, len(values)-1)
	}

	adapters := DefaultAdapters()
	adapters.MovingAverage = short
	runner := NewRunner(adapters, zerolog.Nop())
	cfg := domain.StrategyConfig{Variant: domain.StrategySMACrossover}

	_, err := runner.Run(context.Background(), makeBars(trendingCloses(30)), cfg, RunOptions{})
	require.ErrorIs(t, err, domain.ErrMisalignedInput)

	adapters = DefaultAdapters()
	adapters.RangeMeasure = func(_, _, close []float64, _ int) []float64 {
		return make([]float64, len(close)-1)
	}
	runner = NewRunner(adapters, zerolog.Nop())
	stopMult := 3.0

	_, err = runner.Run(context.Background(), makeBars(trendingCloses(30)), cfg, RunOptions{StopMultiplier: &stopMult})
	require.ErrorIs(t, err, domain.ErrMisalignedInput)
}
