package domain

// DailyTable holds the per-period output columns of one backtest, all
// aligned to the original bar index. Undefined entries are NaN.
type DailyTable struct {
	TimestampMs []int64   `json:"timestamp_ms"`
	Return      []float64 `json:"return"`       // simple return of adjusted close, first value 0
	Signal      []float64 `json:"signal"`       // long/flat intent, strictly {0, 1}
	Position    []float64 `json:"position"`     // end-of-day target exposure after sizing and stops
	PnL         []float64 `json:"pnl"`          // lagged position times return
	Equity      []float64 `json:"equity"`       // cumulative product of (1 + pnl), seeded at 1
	Exposure    []float64 `json:"exposure"`     // 1 where a non-trivial position is held
	RealizedVol []float64 `json:"realized_vol"` // trailing annualized volatility of returns
	StopLevel   []float64 `json:"stop_level"`   // trailing stop price; NaN unless the stop machine ran
}

// Len returns the number of periods in the table.
func (t *DailyTable) Len() int {
	return len(t.TimestampMs)
}
