package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lookback/internal/viewer"
	"lookback/pkg/lookback"
)

func main() {
	serverURL := flag.String("server", "", "lookback server base URL")
	flag.Parse()

	url := *serverURL
	if url == "" {
		url = os.Getenv("LOOKBACK_SERVER")
	}
	if url == "" {
		url = "http://localhost:8080"
	}

	logPath := fmt.Sprintf("/tmp/lookback-viewer-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))

	client := lookback.NewClient(url)
	logger.Info("starting viewer", "server", url)

	p := tea.NewProgram(viewer.NewApp(client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
