// Package store defines storage interfaces for persisting and retrieving
// purchase analyses and daily bar data.
package store

import (
	"context"
	"time"

	"lookback/internal/domain"

	"lookback/pkg/lookback"
)

// AnalysisStore persists purchase profit analyses and lists recorded entries.
type AnalysisStore interface {
	// SaveAnalysis inserts a batch of analysis rows in one transaction.
	SaveAnalysis(ctx context.Context, rows []domain.AnalysisRow) error

	// ListEntries returns the distinct (symbol, purchase date) pairs,
	// newest first.
	ListEntries(ctx context.Context) ([]lookback.Entry, error)

	// Close releases the underlying database connection.
	Close() error
}

// BarStore persists and retrieves daily OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars, merging with existing data.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end].
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols with stored bars.
	ListSymbols(ctx context.Context) ([]string, error)
}
