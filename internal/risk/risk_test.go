package risk

import (
	"errors"
	"math"
	"testing"

	"trade-backtest-lab/internal/domain"
)

func TestRealizedVol_Warmup(t *testing.T) {
	returns := make([]float64, 25)
	for i := range returns {
		returns[i] = 0.01 * float64(i%3)
	}

	vol := RealizedVol(returns, 20)
	for i := 0; i < 19; i++ {
		if !math.IsNaN(vol[i]) {
			t.Errorf("index %d: expected NaN during warm-up, got %f", i, vol[i])
		}
	}
	for i := 19; i < len(vol); i++ {
		if math.IsNaN(vol[i]) {
			t.Errorf("index %d: expected defined volatility, got NaN", i)
		}
	}
}

func TestRealizedVol_Annualized(t *testing.T) {
	// Alternating +1%/-1% returns over a 2-period window: sample std of
	// {0.01, -0.01} is 0.01*sqrt(2), annualized by sqrt(252).
	returns := []float64{0.01, -0.01, 0.01, -0.01}
	vol := RealizedVol(returns, 2)

	want := 0.01 * math.Sqrt2 * math.Sqrt(252)
	for i := 1; i < len(vol); i++ {
		if math.Abs(vol[i]-want) > 1e-9 {
			t.Errorf("index %d: expected %f, got %f", i, want, vol[i])
		}
	}
}

func TestTargetVolLeverage(t *testing.T) {
	vol := []float64{math.NaN(), 0.30, 0.0001}
	lev := TargetVolLeverage(vol, 0.15)

	if !math.IsNaN(lev[0]) {
		t.Errorf("expected NaN leverage for undefined vol, got %f", lev[0])
	}
	if math.Abs(lev[1]-0.5) > 1e-6 {
		t.Errorf("expected 0.5, got %f", lev[1])
	}
	if lev[2] != MaxLeverage {
		t.Errorf("expected cap at %f for quiet vol, got %f", MaxLeverage, lev[2])
	}
}

func TestSize_WarmupTakesNoPosition(t *testing.T) {
	sig := []float64{1, 1, 1, 1}
	vol := []float64{math.NaN(), math.NaN(), 0.15, 0.30}

	lev, raw, err := Size(sig, vol, 0.15, TargetVolLeverage)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}

	if raw[0] != 0 || raw[1] != 0 {
		t.Errorf("expected zero position during warm-up, got %v", raw[:2])
	}
	if math.Abs(raw[2]-1.0) > 1e-6 {
		t.Errorf("expected unit position at target vol, got %f", raw[2])
	}
	if math.Abs(lev[3]-0.5) > 1e-6 {
		t.Errorf("expected leverage 0.5, got %f", lev[3])
	}
}

func TestSize_MisalignedSizingAdapter(t *testing.T) {
	short := func(realizedVol []float64, _ float64) []float64 {
		return make([]float64, len(realizedVol)-1)
	}

	_, _, err := Size([]float64{1, 1}, []float64{0.1, 0.2}, 0.15, short)
	if !errors.Is(err, domain.ErrMisalignedInput) {
		t.Fatalf("expected ErrMisalignedInput, got %v", err)
	}
}
