// Package indicators implements the pure indicator functions consumed by
// the backtest core: simple moving average, Wilder's RSI, and Wilder's
// average true range. Each output is aligned to the input index with NaN
// for warm-up periods.
package indicators

import "math"

// SMA computes a simple moving average over the trailing window.
// Entries before a full window are NaN.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// RSI computes the relative strength index with Wilder's smoothing
// (exponential with alpha = 1/period). Output is bounded in [0, 100].
// The first entry is NaN (no prior close to diff against); when the
// average loss is zero the value saturates at 100.
func RSI(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = math.NaN()
	if period <= 0 {
		period = 1
	}

	alpha := 1.0 / float64(period)
	var avgGain, avgLoss float64
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		if i == 1 {
			avgGain = gain
			avgLoss = loss
		} else {
			avgGain = alpha*gain + (1-alpha)*avgGain
			avgLoss = alpha*loss + (1-alpha)*avgLoss
		}

		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// ATR computes Wilder's average true range: an exponential mean
// (alpha = 1/period) of the true range, where true range is the largest
// of high-low, |high-prevClose|, and |low-prevClose|. The first entry is
// NaN since no previous close exists.
func ATR(high, low, close []float64, period int) []float64 {
	out := make([]float64, len(close))
	if len(close) == 0 {
		return out
	}
	out[0] = math.NaN()
	if period <= 0 {
		period = 1
	}

	alpha := 1.0 / float64(period)
	var atr float64
	for i := 1; i < len(close); i++ {
		tr := trueRange(high[i], low[i], close[i-1])
		if i == 1 {
			atr = tr
		} else {
			atr = alpha*tr + (1-alpha)*atr
		}
		out[i] = atr
	}
	return out
}

func trueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if d := math.Abs(high - prevClose); d > tr {
		tr = d
	}
	if d := math.Abs(low - prevClose); d > tr {
		tr = d
	}
	return tr
}
