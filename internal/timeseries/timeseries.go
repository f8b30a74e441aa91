// Package timeseries provides aligned transforms over float64 series.
// Undefined entries are represented as NaN, matching the warm-up
// convention used by the indicator functions.
package timeseries

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Returns computes simple period-over-period returns of a price series.
// The first value is 0 since no prior observation exists.
func Returns(prices []float64) []float64 {
	out := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = prices[i]/prices[i-1] - 1
	}
	return out
}

// RollingStd computes the trailing sample standard deviation over a
// fixed window. The first window-1 entries are NaN. A NaN inside the
// window makes the output NaN for that period.
func RollingStd(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		win := values[i-window+1 : i+1]
		if hasNaN(win) {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.StdDev(win, nil)
	}
	return out
}

// CumProd1p compounds a return series into a curve seeded at 1.0:
// out[i] = prod(1 + values[0..i]).
func CumProd1p(values []float64) []float64 {
	out := make([]float64, len(values))
	acc := 1.0
	for i, v := range values {
		acc *= 1 + v
		out[i] = acc
	}
	return out
}

// Filled returns a copy with NaN entries replaced by fill.
func Filled(values []float64, fill float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = fill
		} else {
			out[i] = v
		}
	}
	return out
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
