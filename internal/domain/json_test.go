package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestDailyTableMarshalNaNAsNull(t *testing.T) {
	table := &DailyTable{
		TimestampMs: []int64{1, 2},
		Return:      []float64{0, 0.01},
		Signal:      []float64{0, 1},
		Position:    []float64{0, 1},
		PnL:         []float64{0, 0.01},
		Equity:      []float64{1, 1.01},
		Exposure:    []float64{0, 1},
		RealizedVol: []float64{math.NaN(), 0.2},
		StopLevel:   []float64{math.NaN(), math.NaN()},
	}

	raw, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(raw)
	if !strings.Contains(got, `"realized_vol":[null,0.2]`) {
		t.Errorf("realized_vol not rendered with null warmup: %s", got)
	}
	if !strings.Contains(got, `"stop_level":[null,null]`) {
		t.Errorf("stop_level not rendered as nulls: %s", got)
	}
}

func TestStatsMarshalNaNSharpe(t *testing.T) {
	raw, err := json.Marshal(Stats{Sharpe: math.NaN(), FinalEquity: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"sharpe":null`) {
		t.Errorf("NaN sharpe not rendered as null: %s", raw)
	}
}
