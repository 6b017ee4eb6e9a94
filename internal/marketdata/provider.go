// Package marketdata fetches daily price history and company metadata from
// external market data sources.
package marketdata

import (
	"context"
	"errors"
	"time"

	"lookback/internal/domain"

	"lookback/pkg/lookback"
)

// ErrUnsupported is returned by providers that cannot serve a given request
// kind at all (as opposed to a transient failure).
var ErrUnsupported = errors.New("marketdata: not supported by this provider")

// Provider supplies daily bars and company metadata for a symbol.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// DailyBars returns daily bars for symbol within [start, end], sorted
	// by time ascending.
	DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// CompanyInfo returns descriptive and fundamental metadata for symbol.
	CompanyInfo(ctx context.Context, symbol string) (*lookback.StockInfo, error)
}
