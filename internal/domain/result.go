package domain

// Stats is the scalar statistics record for one backtested series.
type Stats struct {
	CAGR            float64 `json:"cagr"`             // compound annualized growth rate
	Sharpe          float64 `json:"sharpe"`           // annualized risk-adjusted ratio over pnl
	MaxDrawdown     float64 `json:"max_drawdown"`     // worst peak-to-trough equity decline, <= 0
	AverageExposure float64 `json:"average_exposure"` // mean of the exposure indicator
	FinalEquity     float64 `json:"final_equity"`     // last value of the equity curve
	TradesApprox    int     `json:"trades_approx"`    // rough count of position flips/opens/closes
}

// Result bundles the daily table and summary statistics for one series.
type Result struct {
	Table *DailyTable `json:"table"`
	Stats Stats       `json:"stats"`
}

// SummaryRow is one row of the batch summary table.
type SummaryRow struct {
	Symbol string `json:"symbol"`
	Stats  Stats  `json:"stats"`
}

// BatchResult maps series identifiers to their daily tables and carries
// one summary table with a row per processed series. Summary preserves
// the batch iteration order; entries skipped for missing data appear in
// neither field.
type BatchResult struct {
	Tables  map[string]*DailyTable `json:"tables"`
	Summary []SummaryRow           `json:"summary"`
}
