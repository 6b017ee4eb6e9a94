package store

import (
	"context"
	"database/sql"
	"fmt"

	"lookback/internal/domain"

	"lookback/pkg/lookback"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ AnalysisStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS stock_analysis (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	purchase_date DATE NOT NULL,
	purchase_price REAL NOT NULL,
	analysis_date DATE NOT NULL,
	closing_price REAL NOT NULL,
	profit_percentage REAL NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore implements AnalysisStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures the
// schema exists, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAnalysis inserts the given analysis rows in a single transaction.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, rows []domain.AnalysisRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stock_analysis
		(symbol, purchase_date, purchase_price, analysis_date, closing_price, profit_percentage)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.Symbol, r.PurchaseDate, r.PurchasePrice,
			r.AnalysisDate, r.ClosingPrice, r.ProfitPct,
		); err != nil {
			return fmt.Errorf("inserting analysis row for %s/%s: %w", r.Symbol, r.AnalysisDate, err)
		}
	}

	return tx.Commit()
}

// ListEntries returns the distinct (symbol, purchase date) pairs ordered by
// most recent insertion first.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]lookback.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, purchase_date
		FROM stock_analysis
		GROUP BY symbol, purchase_date
		ORDER BY MAX(created_at) DESC, MAX(id) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []lookback.Entry
	for rows.Next() {
		var e lookback.Entry
		if err := rows.Scan(&e.Symbol, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
