package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lookback/internal/domain"
	"lookback/internal/marketdata"
	"lookback/internal/store"
	"lookback/internal/util"

	"lookback/pkg/lookback"
)

// Chart window around the purchase date, in calendar days.
const (
	windowBefore = 60
	windowAfter  = 60
)

// Server serves the lookback HTTP API.
type Server struct {
	provider marketdata.Provider
	analyses store.AnalysisStore
	archive  store.BarStore // nil disables the bar archive
	log      *slog.Logger
}

// NewServer creates a new API server. archive may be nil to disable the
// local bar archive.
func NewServer(provider marketdata.Provider, analyses store.AnalysisStore, archive store.BarStore, log *slog.Logger) *Server {
	return &Server{
		provider: provider,
		analyses: analyses,
		archive:  archive,
		log:      log,
	}
}

// Init reports what the bar archive already holds, so startup logs show
// which symbols can still be served when the provider is down.
func (s *Server) Init(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}
	symbols, err := s.archive.ListSymbols(ctx)
	if err != nil {
		return fmt.Errorf("listing archived symbols: %w", err)
	}
	s.log.Info("bar archive ready", "symbols", len(symbols))
	return nil
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/entries", s.handleEntries)
	mux.HandleFunc("POST /api/chart-data", s.handleChartData)
	mux.HandleFunc("GET /api/stock-info/{symbol}", s.handleStockInfo)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.analyses.ListEntries(r.Context())
	if err != nil {
		s.log.Error("listing entries", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if entries == nil {
		entries = []lookback.Entry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	var req lookback.ChartDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" || req.PurchaseDate == "" {
		writeError(w, http.StatusBadRequest, "symbol and purchase_date are required")
		return
	}

	purchase, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid purchase_date %q", req.PurchaseDate))
		return
	}

	symbol := strings.ToUpper(req.Symbol)
	start := purchase.AddDate(0, 0, -windowBefore)
	end := purchase.AddDate(0, 0, windowAfter)

	bars, err := s.fetchBars(r.Context(), symbol, start, end)
	if err != nil {
		s.log.Error("fetching bars", "symbol", symbol, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("no chart data for %s: %v", symbol, err))
		return
	}

	writeJSON(w, buildChartData(bars, purchase))
}

func (s *Server) handleStockInfo(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	// A provider that cannot serve company info at all fails permanently;
	// retry only transient errors.
	info, err := s.provider.CompanyInfo(r.Context(), symbol)
	if err != nil && !errors.Is(err, marketdata.ErrUnsupported) {
		err = util.Retry(r.Context(), 2, 500*time.Millisecond, func() error {
			var ferr error
			info, ferr = s.provider.CompanyInfo(r.Context(), symbol)
			return ferr
		})
	}
	if err != nil {
		s.log.Error("fetching stock info", "symbol", symbol, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("no stock info for %s", symbol))
		return
	}

	writeJSON(w, info)
}

// fetchBars fetches daily bars from the provider with retries, archiving
// results on success. When the provider fails, previously archived bars are
// served instead so known symbols keep working offline.
func (s *Server) fetchBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	var bars []domain.Bar
	err := util.Retry(ctx, 3, 500*time.Millisecond, func() error {
		var ferr error
		bars, ferr = s.provider.DailyBars(ctx, symbol, start, end)
		return ferr
	})
	if err == nil {
		if s.archive != nil {
			if werr := s.archive.WriteBars(ctx, bars); werr != nil {
				s.log.Warn("archiving bars", "symbol", symbol, "error", werr)
			}
		}
		return bars, nil
	}

	if s.archive != nil {
		archived, rerr := s.archive.ReadBars(ctx, symbol, start, end)
		if rerr == nil && len(archived) > 0 {
			s.log.Info("serving archived bars", "symbol", symbol, "bars", len(archived))
			return archived, nil
		}
	}
	return nil, err
}
