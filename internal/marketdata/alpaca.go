package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	alpacamd "github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"lookback/internal/domain"

	"lookback/pkg/lookback"
)

// Compile-time interface check.
var _ Provider = (*AlpacaProvider)(nil)

// AlpacaProvider implements Provider using the Alpaca market-data API.
// It serves daily bars only; company fundamentals are not part of the
// Alpaca data surface, so CompanyInfo returns ErrUnsupported.
type AlpacaProvider struct {
	client *alpacamd.Client
}

// NewAlpacaProvider creates an Alpaca provider with the given credentials.
// An empty dataURL uses the SDK default endpoint.
func NewAlpacaProvider(apiKey, apiSecret, dataURL string) *AlpacaProvider {
	opts := alpacamd.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaProvider{client: alpacamd.NewClient(opts)}
}

func (p *AlpacaProvider) Name() string { return "alpaca" }

// DailyBars fetches daily bars for [start, end] from the Alpaca API.
func (p *AlpacaProvider) DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	alpacaBars, err := p.client.GetBars(strings.ToUpper(symbol), alpacamd.GetBarsRequest{
		TimeFrame: alpacamd.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("GetBars: %w", err)
	}

	bars := make([]domain.Bar, 0, len(alpacaBars))
	for _, ab := range alpacaBars {
		bars = append(bars, domain.Bar{
			Symbol:    strings.ToUpper(symbol),
			Timestamp: ab.Timestamp,
			Open:      ab.Open,
			High:      ab.High,
			Low:       ab.Low,
			Close:     ab.Close,
			Volume:    int64(ab.Volume),
		})
	}
	return bars, nil
}

// CompanyInfo is not available from Alpaca market data.
func (p *AlpacaProvider) CompanyInfo(_ context.Context, _ string) (*lookback.StockInfo, error) {
	return nil, ErrUnsupported
}
