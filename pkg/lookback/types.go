// Package lookback provides the wire types and Go client for the lookback
// HTTP API: recorded purchase entries, company info, and chart-ready price
// series.
package lookback

import (
	"encoding/json"
	"fmt"
)

// Entry identifies one recorded purchase lookup.
type Entry struct {
	Symbol string `json:"symbol"`
	Date   string `json:"date"` // YYYY-MM-DD
}

// Ratio is a numeric field that the info endpoint reports either as a JSON
// number or as the literal string "N/A" when the upstream source has no
// value for it.
type Ratio struct {
	Value float64
	Valid bool
}

// MarshalJSON emits the number, or "N/A" when no value is present.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte(`"N/A"`), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a JSON number, null, or the string "N/A".
func (r *Ratio) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `"N/A"` {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("ratio: %w", err)
	}
	*r = Ratio{Value: v, Valid: true}
	return nil
}

// StockInfo holds descriptive and fundamental metadata for a symbol.
// Numeric fields default to zero (and string fields to "N/A") when the
// upstream source has no data.
type StockInfo struct {
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	MarketCap        float64 `json:"market_cap"`
	PERatio          Ratio   `json:"pe_ratio"`
	DividendYield    float64 `json:"dividend_yield"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
	AvgVolume        int64   `json:"avg_volume"`
}

// CandlePoint is one OHLC point of the candlestick series.
type CandlePoint struct {
	Time  int64   `json:"time"` // Unix seconds
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// VolumePoint is one bar of the volume histogram series.
type VolumePoint struct {
	Time  int64   `json:"time"` // Unix seconds
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ChartData is the chart-ready payload for one (symbol, purchase date) query.
type ChartData struct {
	Candlestick       []CandlePoint `json:"candlestick"`
	Volume            []VolumePoint `json:"volume"`
	PurchaseTimestamp int64         `json:"purchase_timestamp"` // Unix seconds
}

// ChartDataRequest is the body of POST /api/chart-data.
type ChartDataRequest struct {
	Symbol       string `json:"symbol"`
	PurchaseDate string `json:"purchase_date"` // YYYY-MM-DD
}
