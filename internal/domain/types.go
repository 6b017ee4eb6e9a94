// Package domain defines the server-side data types shared across lookback:
// daily price bars and purchase analysis rows.
package domain

import "time"

// Bar is one daily OHLCV bar for a symbol.
type Bar struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// AnalysisRow is one persisted day of a purchase profit analysis.
type AnalysisRow struct {
	ID            int64
	Symbol        string
	PurchaseDate  string // YYYY-MM-DD
	PurchasePrice float64
	AnalysisDate  string // YYYY-MM-DD
	ClosingPrice  float64
	ProfitPct     float64
	CreatedAt     time.Time
}
