package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/tphummel/it_inventory/internal/config"
	"github.com/tphummel/it_inventory/internal/inventory"
	"github.com/tphummel/it_inventory/internal/kv"
	"github.com/tphummel/it_inventory/internal/tui"
)

// loadConfig reads .env if present, then the YAML file named by CONFIG_PATH,
// then environment overrides.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogFile opens the log file in append mode. The terminal belongs to the
// UI, so logs never go to stderr.
func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := openLogFile(cfg.TUI.LogFile)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()

	logger := cfg.Log.NewLogger(logFile)
	slog.SetDefault(logger)

	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := kv.Open(openCtx, cfg.Storage)
	cancelOpen()
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("storage close error", "error", err)
		}
	}()

	inv := inventory.Open(store, logger)
	model := tui.New(context.Background(), inv, logger, cfg.TUI.ExportDir)

	logger.Info("starting terminal dashboard", "storage", cfg.Storage.Driver, "export_dir", cfg.TUI.ExportDir)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("terminal dashboard failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
