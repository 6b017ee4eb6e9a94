package viewer

import (
	"testing"

	"lookback/pkg/lookback"
)

func TestInfoPanelStartsCleared(t *testing.T) {
	p := NewInfoPanel()
	for i, v := range p.Values() {
		if v != "-" {
			t.Errorf("slot %d = %q, want -", i, v)
		}
	}
}

func TestInfoPanelUpdate(t *testing.T) {
	p := NewInfoPanel()
	p.Update(&lookback.StockInfo{
		Name:             "Apple Inc.",
		Sector:           "Technology",
		Industry:         "Consumer Electronics",
		MarketCap:        3.4e12,
		PERatio:          lookback.Ratio{Value: 35.12, Valid: true},
		DividendYield:    0.0044,
		FiftyTwoWeekHigh: 237.23,
		FiftyTwoWeekLow:  164.08,
		AvgVolume:        58500000,
	})

	want := []string{
		"Apple Inc.",
		"Technology",
		"Consumer Electronics",
		"$3400.00B",
		"35.12",
		"0.44%",
		"$237.23",
		"$164.08",
		"58,500,000",
	}
	got := p.Values()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInfoPanelClearAfterUpdate(t *testing.T) {
	p := NewInfoPanel()
	p.Update(&lookback.StockInfo{Name: "Apple Inc.", MarketCap: 1e9})

	// A failed fetch resets every slot regardless of prior content.
	p.Clear()
	for i, v := range p.Values() {
		if v != "-" {
			t.Errorf("slot %d = %q after Clear, want -", i, v)
		}
	}
}

func TestInfoPanelMissingFields(t *testing.T) {
	p := NewInfoPanel()
	p.Update(&lookback.StockInfo{Name: "Shell Corp"})

	got := p.Values()
	// Zero-valued numerics all render as N/A.
	for _, i := range []int{3, 4, 5, 6, 7, 8} {
		if got[i] != "N/A" {
			t.Errorf("slot %d = %q, want N/A", i, got[i])
		}
	}
}
