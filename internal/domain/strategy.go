package domain

// Strategy variant identifiers.
const (
	StrategySMACrossover     = "SMA_CROSSOVER"
	StrategyRSIMeanReversion = "RSI_MEAN_REVERSION"
)

// Default parameter values, matching the conventional 20/100 crossover and
// 14-period 30/70 oscillator bands.
const (
	DefaultFastWindow    = 20
	DefaultSlowWindow    = 100
	DefaultLookback      = 14
	DefaultBuyThreshold  = 30.0
	DefaultSellThreshold = 70.0
	DefaultVolWindow     = 20
	DefaultTargetVol     = 0.15
)

// StrategyConfig selects a strategy variant and its parameters.
// Zero-valued fields are replaced by defaults via WithDefaults.
type StrategyConfig struct {
	Variant string `yaml:"variant" json:"variant"`

	// SMA_CROSSOVER parameters
	FastWindow int `yaml:"fast_window" json:"fast_window"`
	SlowWindow int `yaml:"slow_window" json:"slow_window"`

	// RSI_MEAN_REVERSION parameters
	Lookback      int     `yaml:"lookback" json:"lookback"`
	BuyThreshold  float64 `yaml:"buy_threshold" json:"buy_threshold"`
	SellThreshold float64 `yaml:"sell_threshold" json:"sell_threshold"`

	// Realized volatility window for position sizing
	VolWindow int `yaml:"vol_window" json:"vol_window"`
}

// WithDefaults returns a copy with zero-valued parameters filled in.
// The variant itself is never defaulted; an empty variant is invalid.
func (c StrategyConfig) WithDefaults() StrategyConfig {
	if c.FastWindow == 0 {
		c.FastWindow = DefaultFastWindow
	}
	if c.SlowWindow == 0 {
		c.SlowWindow = DefaultSlowWindow
	}
	if c.Lookback == 0 {
		c.Lookback = DefaultLookback
	}
	if c.BuyThreshold == 0 {
		c.BuyThreshold = DefaultBuyThreshold
	}
	if c.SellThreshold == 0 {
		c.SellThreshold = DefaultSellThreshold
	}
	if c.VolWindow == 0 {
		c.VolWindow = DefaultVolWindow
	}
	return c
}
