package models

// EquityPoint is one sample of a backtest equity curve. Date is an ISO
// calendar date (YYYY-MM-DD); Value is rounded to 2 decimal places.
type EquityPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Trade represents a single fill in a backtest report. The synthesizer
// currently emits no trade-level detail, so result slices stay empty.
type Trade struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Timestamp string  `json:"timestamp"`
}

// BacktestResult holds the performance report for a single backtest run.
// A new run replaces the previous result entirely; no history is kept.
type BacktestResult struct {
	StrategyID  string        `json:"strategyId"`
	SharpeRatio float64       `json:"sharpeRatio"`
	TotalReturn float64       `json:"totalReturn"`
	MaxDrawdown float64       `json:"maxDrawdown"`
	WinRate     float64       `json:"winRate"`
	EquityCurve []EquityPoint `json:"equityCurve"`
	Trades      []Trade       `json:"trades"`
}
