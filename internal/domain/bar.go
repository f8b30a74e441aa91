package domain

// Bar represents one daily observation of an instrument.
// Timestamps must be strictly increasing within a series; the loader
// enforces ordering and rejects duplicates before bars reach the engine.
type Bar struct {
	TimestampMs int64   // Unix timestamp in milliseconds (start of day)
	Open        float64 // open price
	High        float64 // high price
	Low         float64 // low price
	Close       float64 // close price
	AdjClose    float64 // dividend/split adjusted close, used for returns
	Volume      float64 // traded volume
}

// AdjCloses extracts the adjusted close column.
func AdjCloses(bars []*Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.AdjClose
	}
	return out
}

// Closes extracts the close column.
func Closes(bars []*Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high column.
func Highs(bars []*Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column.
func Lows(bars []*Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Timestamps extracts the timestamp column.
func Timestamps(bars []*Bar) []int64 {
	out := make([]int64, len(bars))
	for i, b := range bars {
		out[i] = b.TimestampMs
	}
	return out
}
