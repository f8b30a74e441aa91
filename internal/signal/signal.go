// Package signal converts a price series into a long/flat position
// intent series for a selected strategy variant.
package signal

import (
	"errors"
	"fmt"
	"math"

	"trade-backtest-lab/internal/domain"
)

// ErrInvalidStrategy is returned for an unrecognized strategy variant.
var ErrInvalidStrategy = errors.New("invalid strategy")

// MovingAverageFunc computes a moving average aligned to the input,
// NaN during warm-up.
type MovingAverageFunc func(values []float64, window int) []float64

// OscillatorFunc computes an oscillator bounded in [0, 100] aligned to
// the input, NaN during warm-up.
type OscillatorFunc func(values []float64, window int) []float64

// ValidateVariant checks the strategy variant name without running any
// computation. Batch callers use it to fail fast on configuration errors.
func ValidateVariant(variant string) error {
	switch variant {
	case domain.StrategySMACrossover, domain.StrategyRSIMeanReversion:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, variant)
	}
}

// Generate produces the {0, 1} signal series for the configured variant.
// Output values are strictly 0.0 or 1.0 and aligned to prices.
func Generate(prices []float64, cfg domain.StrategyConfig, ma MovingAverageFunc, osc OscillatorFunc) ([]float64, error) {
	cfg = cfg.WithDefaults()
	switch cfg.Variant {
	case domain.StrategySMACrossover:
		return crossover(prices, cfg.FastWindow, cfg.SlowWindow, ma)
	case domain.StrategyRSIMeanReversion:
		return meanReversion(prices, cfg.Lookback, cfg.BuyThreshold, cfg.SellThreshold, osc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, cfg.Variant)
	}
}

// aligned reports an indicator adapter output that does not match the
// input index as ErrMisalignedInput.
func aligned(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s adapter returned %d periods, want %d",
			domain.ErrMisalignedInput, name, got, want)
	}
	return nil
}

// crossover is long wherever the fast average exceeds the slow average.
// NaN averages compare false, so warm-up periods stay flat.
func crossover(prices []float64, fast, slow int, ma MovingAverageFunc) ([]float64, error) {
	f := ma(prices, fast)
	if err := aligned("fast average", len(f), len(prices)); err != nil {
		return nil, err
	}
	s := ma(prices, slow)
	if err := aligned("slow average", len(s), len(prices)); err != nil {
		return nil, err
	}
	out := make([]float64, len(prices))
	for i := range prices {
		if f[i] > s[i] {
			out[i] = 1.0
		}
	}
	return out, nil
}

// meanReversion takes a decision only at threshold crossings: 1 when the
// oscillator is below the buy threshold, 0 when above the sell threshold,
// undefined between. Gaps are forward-filled with the last defined
// decision (an explicit left fold); leading undefined values seed to 0.
func meanReversion(prices []float64, lookback int, buyLT, sellGT float64, osc OscillatorFunc) ([]float64, error) {
	r := osc(prices, lookback)
	if err := aligned("oscillator", len(r), len(prices)); err != nil {
		return nil, err
	}
	out := make([]float64, len(prices))
	held := 0.0
	for i := range prices {
		switch {
		case math.IsNaN(r[i]):
			// warm-up: keep current stance
		case r[i] < buyLT:
			held = 1.0
		case r[i] > sellGT:
			held = 0.0
		}
		out[i] = held
	}
	return out, nil
}
