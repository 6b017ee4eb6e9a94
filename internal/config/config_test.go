package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yamlContent := []byte(`
storage:
  data_dir: "/tmp/lookback/data"
  sqlite_path: "/tmp/lookback/stock_analysis.db"
server:
  host: "0.0.0.0"
  port: 8080
market_data:
  provider: "yahoo"
logging:
  level: "info"
`)

	path := filepath.Join(t.TempDir(), "lookback.yaml")
	if err := os.WriteFile(path, yamlContent, 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	// Clear any environment overrides that might interfere.
	t.Setenv("DATA_DIR", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MARKET_DATA_PROVIDER", "")
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("SQLITE_PATH")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("MARKET_DATA_PROVIDER")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.DataDir != "/tmp/lookback/data" {
		t.Errorf("DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/lookback/data")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.MarketData.Provider != "yahoo" {
		t.Errorf("Provider = %q, want %q", cfg.MarketData.Provider, "yahoo")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookback.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	t.Setenv("SQLITE_PATH", "/override/analysis.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MARKET_DATA_PROVIDER", "alpaca")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.SQLitePath != "/override/analysis.db" {
		t.Errorf("SQLitePath = %q, want env override", cfg.Storage.SQLitePath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.MarketData.Provider != "alpaca" {
		t.Errorf("Provider = %q, want %q", cfg.MarketData.Provider, "alpaca")
	}
}

func TestDefault(t *testing.T) {
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("SQLITE_PATH")

	cfg := Default()
	if cfg.Storage.SQLitePath != "stock_analysis.db" {
		t.Errorf("SQLitePath = %q, want default", cfg.Storage.SQLitePath)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.MarketData.Provider != "yahoo" {
		t.Errorf("Provider = %q, want %q", cfg.MarketData.Provider, "yahoo")
	}
}
