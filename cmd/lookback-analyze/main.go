package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lookback/internal/analysis"
	"lookback/internal/config"
	"lookback/internal/marketdata"
	"lookback/internal/store"
	"lookback/internal/util"
)

func main() {
	symbol := flag.String("symbol", "", "stock symbol, e.g. AAPL")
	date := flag.String("date", "", "purchase date, YYYY-MM-DD")
	save := flag.Bool("save", true, "record the analysis in the database")
	flag.Parse()

	if *symbol == "" || *date == "" {
		fmt.Fprintln(os.Stderr, "usage: lookback-analyze -symbol AAPL -date 2024-01-15")
		os.Exit(2)
	}
	purchase, err := time.Parse("2006-01-02", *date)
	if err != nil {
		log.Fatalf("invalid date %q: %v", *date, err)
	}

	cfg := loadConfig()
	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	provider := newProvider(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Fetch a couple of extra weeks so weekends and holidays still leave
	// seven trading days after the purchase.
	bars, err := provider.DailyBars(ctx, *symbol, purchase, purchase.AddDate(0, 0, 21))
	if err != nil {
		log.Fatalf("fetching bars for %s: %v", *symbol, err)
	}

	result, err := analysis.Compute(*symbol, purchase, bars)
	if err != nil {
		log.Fatalf("analyzing %s: %v", *symbol, err)
	}

	fmt.Printf("%s purchased %s at $%.2f\n\n", result.Symbol, result.PurchaseDate, result.PurchasePrice)
	fmt.Printf("%-12s %10s %10s\n", "Date", "Close", "Profit%")
	for _, d := range result.Days {
		fmt.Printf("%-12s %10.2f %9.2f%%\n", d.Date, d.Close, d.ProfitPct)
	}

	if !*save {
		return
	}
	analyses, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening analysis store: %v", err)
	}
	defer analyses.Close()

	if err := analyses.SaveAnalysis(ctx, result.Rows()); err != nil {
		log.Fatalf("saving analysis: %v", err)
	}
	logger.Info("analysis recorded", "symbol", result.Symbol, "date", result.PurchaseDate, "days", len(result.Days))
}

func loadConfig() *config.Config {
	cfgPath := "config/lookback.yaml"
	if p := os.Getenv("LOOKBACK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if os.IsNotExist(err) && os.Getenv("LOOKBACK_CONFIG") == "" {
			return config.Default()
		}
		log.Fatalf("loading config: %v", err)
	}
	return cfg
}

func newProvider(cfg *config.Config) marketdata.Provider {
	switch cfg.MarketData.Provider {
	case "alpaca":
		return marketdata.NewAlpacaProvider(cfg.MarketData.APIKey, cfg.MarketData.APISecret, cfg.MarketData.DataURL)
	default:
		return marketdata.NewYahooProvider(cfg.MarketData.ProxyURL)
	}
}
