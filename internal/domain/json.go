package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// floatColumn marshals a float series with NaN (and infinities) as
// null; encoding/json rejects them outright.
type floatColumn []float64

func (c floatColumn) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(appendJSONFloat(nil, v))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// nullableFloat marshals a scalar statistic, NaN as null.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	return appendJSONFloat(nil, float64(f)), nil
}

func appendJSONFloat(b []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(b, "null"...)
	}
	return strconv.AppendFloat(b, v, 'g', -1, 64)
}

// MarshalJSON renders undefined (NaN) entries as null.
func (t *DailyTable) MarshalJSON() ([]byte, error) {
	type alias struct {
		TimestampMs []int64     `json:"timestamp_ms"`
		Return      floatColumn `json:"return"`
		Signal      floatColumn `json:"signal"`
		Position    floatColumn `json:"position"`
		PnL         floatColumn `json:"pnl"`
		Equity      floatColumn `json:"equity"`
		Exposure    floatColumn `json:"exposure"`
		RealizedVol floatColumn `json:"realized_vol"`
		StopLevel   floatColumn `json:"stop_level"`
	}
	return json.Marshal(alias{
		TimestampMs: t.TimestampMs,
		Return:      t.Return,
		Signal:      t.Signal,
		Position:    t.Position,
		PnL:         t.PnL,
		Equity:      t.Equity,
		Exposure:    t.Exposure,
		RealizedVol: t.RealizedVol,
		StopLevel:   t.StopLevel,
	})
}

// MarshalJSON renders undefined statistics (e.g. Sharpe of a constant
// pnl series) as null.
func (s Stats) MarshalJSON() ([]byte, error) {
	type alias struct {
		CAGR            nullableFloat `json:"cagr"`
		Sharpe          nullableFloat `json:"sharpe"`
		MaxDrawdown     nullableFloat `json:"max_drawdown"`
		AverageExposure nullableFloat `json:"average_exposure"`
		FinalEquity     nullableFloat `json:"final_equity"`
		TradesApprox    int           `json:"trades_approx"`
	}
	return json.Marshal(alias{
		CAGR:            nullableFloat(s.CAGR),
		Sharpe:          nullableFloat(s.Sharpe),
		MaxDrawdown:     nullableFloat(s.MaxDrawdown),
		AverageExposure: nullableFloat(s.AverageExposure),
		FinalEquity:     nullableFloat(s.FinalEquity),
		TradesApprox:    s.TradesApprox,
	})
}
