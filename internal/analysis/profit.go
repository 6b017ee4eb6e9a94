// Package analysis computes post-purchase profit series for a recorded
// stock purchase.
package analysis

import (
	"fmt"
	"math"
	"time"

	"lookback/internal/domain"
)

// DayProfit is the computed result for one trading day after the purchase.
type DayProfit struct {
	Date      string  // YYYY-MM-DD
	Close     float64 // closing price, rounded to cents
	ProfitPct float64 // percent gain vs purchase price, rounded to 2 decimals
}

// Result holds a complete profit analysis for one purchase.
type Result struct {
	Symbol        string
	PurchaseDate  string
	PurchasePrice float64
	Days          []DayProfit
}

// maxDays is the number of trading days tracked after the purchase.
const maxDays = 7

// Compute derives the profit series from daily bars covering the purchase
// date onward. The purchase price is the close of the first bar at or after
// the purchase date; up to seven following bars become one DayProfit each.
func Compute(symbol string, purchaseDate time.Time, bars []domain.Bar) (*Result, error) {
	// Find the purchase bar.
	idx := -1
	for i, b := range bars {
		if !b.Timestamp.Before(purchaseDate) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no bar data at or after %s for %s", purchaseDate.Format("2006-01-02"), symbol)
	}

	purchasePrice := bars[idx].Close
	res := &Result{
		Symbol:        symbol,
		PurchaseDate:  purchaseDate.Format("2006-01-02"),
		PurchasePrice: round2(purchasePrice),
	}

	for i := idx + 1; i < len(bars) && i-idx <= maxDays; i++ {
		b := bars[i]
		profit := (b.Close - purchasePrice) / purchasePrice * 100
		res.Days = append(res.Days, DayProfit{
			Date:      b.Timestamp.Format("2006-01-02"),
			Close:     round2(b.Close),
			ProfitPct: round2(profit),
		})
	}

	return res, nil
}

// Rows converts a Result into persistable analysis rows.
func (r *Result) Rows() []domain.AnalysisRow {
	rows := make([]domain.AnalysisRow, 0, len(r.Days))
	for _, d := range r.Days {
		rows = append(rows, domain.AnalysisRow{
			Symbol:        r.Symbol,
			PurchaseDate:  r.PurchaseDate,
			PurchasePrice: r.PurchasePrice,
			AnalysisDate:  d.Date,
			ClosingPrice:  d.Close,
			ProfitPct:     d.ProfitPct,
		})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
