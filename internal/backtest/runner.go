// Package backtest runs trading strategies against historical daily
// price series and produces per-period tables and summary statistics.
package backtest

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"trade-backtest-lab/internal/domain"
	"trade-backtest-lab/internal/risk"
	"trade-backtest-lab/internal/signal"
	"trade-backtest-lab/internal/stops"
	"trade-backtest-lab/internal/timeseries"
)

// RunOptions configures a backtest run beyond the strategy itself.
type RunOptions struct {
	// TargetVol is the annualized target volatility for position sizing;
	// 0 means domain.DefaultTargetVol.
	TargetVol float64

	// StopMultiplier enables the trailing-stop machine when non-nil: the
	// stop trails at multiplier times the range measure below price.
	StopMultiplier *float64

	// StopLookback is the range-measure window for the stop machine;
	// 0 means domain.DefaultLookback.
	StopLookback int

	// Workers bounds the batch fan-out; 0 means one worker per series
	// up to a small fixed cap.
	Workers int
}

func (o RunOptions) withDefaults() RunOptions {
	if o.TargetVol == 0 {
		o.TargetVol = domain.DefaultTargetVol
	}
	if o.StopLookback == 0 {
		o.StopLookback = domain.DefaultLookback
	}
	return o
}

// Runner executes the single-series pipeline and the batch fan-out.
// All computation is pure over the input bars; the runner itself holds
// no per-run state and is safe for concurrent use.
type Runner struct {
	adapters Adapters
	log      zerolog.Logger
}

// NewRunner creates a runner with the given adapter functions.
func NewRunner(adapters Adapters, log zerolog.Logger) *Runner {
	return &Runner{adapters: adapters, log: log}
}

// Run backtests one series. Steps:
//  1. Validate input bars (empty -> ErrInsufficientData)
//  2. Derive returns from adjusted close
//  3. Generate the signal series for the strategy variant
//  4. Size by volatility-targeted leverage
//  5. Apply the trailing-stop machine when a multiplier is set
//  6. Convert positions into pnl, equity, exposure, and statistics
//
// Adapter outputs are length-checked against the input index; a
// mismatch propagates as ErrMisalignedInput.
func (r *Runner) Run(ctx context.Context, bars []*domain.Bar, cfg domain.StrategyConfig, opts RunOptions) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty price series", domain.ErrInsufficientData)
	}
	cfg = cfg.WithDefaults()
	opts = opts.withDefaults()

	// 2. Returns on adjusted close, first value 0
	adj := domain.AdjCloses(bars)
	rets := timeseries.Returns(adj)

	// 3. Signal
	sig, err := signal.Generate(adj, cfg, r.adapters.MovingAverage, r.adapters.Oscillator)
	if err != nil {
		return nil, err
	}

	// 4. Volatility targeting: undefined leverage during warm-up sizes
	// to zero rather than erroring, so short histories simply stay flat.
	realizedVol := risk.RealizedVol(rets, cfg.VolWindow)
	_, raw, err := risk.Size(sig, realizedVol, opts.TargetVol, r.adapters.Leverage)
	if err != nil {
		return nil, err
	}

	// 5. Optional trailing stop on close prices
	positions := raw
	stopLevels := nanSeries(len(bars))
	if opts.StopMultiplier != nil {
		closes := domain.Closes(bars)
		ranges := r.adapters.RangeMeasure(domain.Highs(bars), domain.Lows(bars), closes, opts.StopLookback)
		if len(ranges) != len(bars) {
			return nil, fmt.Errorf("%w: range-measure adapter returned %d periods, want %d",
				domain.ErrMisalignedInput, len(ranges), len(bars))
		}
		positions, stopLevels, err = stops.Apply(closes, ranges, raw, *opts.StopMultiplier)
		if err != nil {
			return nil, err
		}
	}

	// 6. PnL, equity, exposure, statistics
	pnl, equity, exposure, st := compute(positions, rets, r.adapters.AnnualizedReturn, r.adapters.RiskAdjusted)

	table := &domain.DailyTable{
		TimestampMs: domain.Timestamps(bars),
		Return:      rets,
		Signal:      sig,
		Position:    positions,
		PnL:         pnl,
		Equity:      equity,
		Exposure:    exposure,
		RealizedVol: realizedVol,
		StopLevel:   stopLevels,
	}
	return &domain.Result{Table: table, Stats: st}, nil
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
