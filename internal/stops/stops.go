// Package stops implements the trailing-stop state machine that walks a
// sized position series day by day and suppresses exposure once the stop
// is breached. Today's stop depends on yesterday's stop, so this is a
// genuine sequential scan and is kept as an explicit two-state machine
// rather than a vectorized transform.
package stops

import (
	"math"

	"trade-backtest-lab/internal/domain"
)

type state int

const (
	stateFlat state = iota
	stateInTrade
)

// Apply walks the raw sized positions in chronological order and returns
// the realized positions plus the trailing stop level series.
//
// Transitions start at index 1 (the first period has no prior signal to
// confirm an entry and always keeps its raw value):
//   - FLAT -> IN_TRADE when the previous and current raw positions are
//     both strictly positive; entry records stop = close - mult*range.
//   - IN_TRADE recomputes a candidate stop each period and only ratchets
//     upward: stop = max(previous stop, close - mult*range).
//   - IN_TRADE -> FLAT when close <= stop; the stop that triggered the
//     exit is still recorded for that period.
//   - FLAT periods carry the previous stop value forward unchanged. The
//     stale value keeps the series continuous and is not meaningful
//     until a new entry redefines it.
//
// The realized position is forced to 0 for every period whose recorded
// stop is defined and whose close is at or below it; all other periods
// pass the raw position through.
func Apply(closes, rangeMeasure, raw []float64, multiplier float64) (positions, stopLevels []float64, err error) {
	if len(closes) == 0 {
		return nil, nil, domain.ErrInsufficientData
	}

	n := len(closes)
	stopLevels = make([]float64, n)
	stopLevels[0] = math.NaN()

	st := stateFlat
	stop := math.NaN()

	for i := 1; i < n; i++ {
		switch st {
		case stateFlat:
			// Entry needs a sustained long, not a single-period blip,
			// and a defined range measure to anchor the stop.
			if raw[i-1] > 0 && raw[i] > 0 && !math.IsNaN(rangeMeasure[i]) {
				st = stateInTrade
				stop = closes[i] - multiplier*rangeMeasure[i]
			}
		case stateInTrade:
			candidate := closes[i] - multiplier*rangeMeasure[i]
			if candidate > stop {
				stop = candidate
			}
			if closes[i] <= stop {
				st = stateFlat
			}
		}
		stopLevels[i] = stop
	}

	positions = make([]float64, n)
	copy(positions, raw)
	for i := 0; i < n; i++ {
		if !math.IsNaN(stopLevels[i]) && closes[i] <= stopLevels[i] {
			positions[i] = 0
		}
	}
	return positions, stopLevels, nil
}
