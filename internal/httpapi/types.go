// Package httpapi serves the lookback REST API: recorded entries, chart-ready
// price series, and company info, as JSON over HTTP.
package httpapi

import (
	"time"

	"lookback/internal/domain"

	"lookback/pkg/lookback"
)

// Volume bar colors, keyed off the bar direction.
const (
	volumeUpColor   = "rgba(38, 166, 154, 0.5)"
	volumeDownColor = "rgba(239, 83, 80, 0.5)"
)

// buildChartData converts daily bars into the chart payload: one candlestick
// point and one colored volume point per bar, plus the purchase timestamp.
func buildChartData(bars []domain.Bar, purchase time.Time) lookback.ChartData {
	data := lookback.ChartData{
		Candlestick:       make([]lookback.CandlePoint, 0, len(bars)),
		Volume:            make([]lookback.VolumePoint, 0, len(bars)),
		PurchaseTimestamp: purchase.Unix(),
	}

	for _, b := range bars {
		ts := b.Timestamp.Unix()
		data.Candlestick = append(data.Candlestick, lookback.CandlePoint{
			Time:  ts,
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		})

		color := volumeUpColor
		if b.Close < b.Open {
			color = volumeDownColor
		}
		data.Volume = append(data.Volume, lookback.VolumePoint{
			Time:  ts,
			Value: float64(b.Volume),
			Color: color,
		})
	}

	return data
}
