package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lookback/internal/config"
	"lookback/internal/httpapi"
	"lookback/internal/marketdata"
	"lookback/internal/store"
	"lookback/internal/util"
)

func main() {
	cfg := loadConfig()

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	analyses, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening analysis store: %v", err)
	}
	defer analyses.Close()

	archive := store.NewParquetStore(cfg.Storage.DataDir)
	provider := newProvider(cfg)
	logger.Info("market data provider", "name", provider.Name())

	srv := httpapi.NewServer(provider, analyses, archive, logger)
	if err := srv.Init(context.Background()); err != nil {
		log.Fatalf("initializing server: %v", err)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Handler(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("lookback server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down lookback server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
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
