package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	TUI     TUIConfig     `yaml:"tui"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port                    string  `yaml:"port"`
	RateLimitPerSec         float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst          int     `yaml:"rate_limit_burst"`
	DeleteConfirmTTLSeconds int     `yaml:"delete_confirm_ttl_seconds"`
}

// DeleteConfirmTTL is how long a pending delete request stays confirmable.
func (s ServerConfig) DeleteConfirmTTL() time.Duration {
	return time.Duration(s.DeleteConfirmTTLSeconds) * time.Second
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	Path        string `yaml:"path"`
	NatsURL     string `yaml:"nats_url"`
	Bucket      string `yaml:"bucket"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TUIConfig holds settings for the terminal dashboard.
type TUIConfig struct {
	ExportDir string `yaml:"export_dir"`
	LogFile   string `yaml:"log_file"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := seeded()
	cfg.applyDefaults()
	return cfg
}

// seeded holds the defaults for fields where the zero value is meaningful
// and so cannot be filled in after decoding.
func seeded() *Config {
	return &Config{Server: ServerConfig{RateLimitPerSec: 20, RateLimitBurst: 40}}
}

// Load reads the configuration from the given path. A missing file is not an
// error when path is empty; defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := seeded()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	// A rate of 0 or less turns rate limiting off.
	if c.Server.RateLimitPerSec <= 0 {
		c.Server.RateLimitPerSec = 0
		c.Server.RateLimitBurst = 0
	} else if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = max(1, int(c.Server.RateLimitPerSec*2))
	}
	if c.Server.DeleteConfirmTTLSeconds <= 0 {
		c.Server.DeleteConfirmTTLSeconds = 300
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "./it_inventory.db"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "it_inventory"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.TUI.ExportDir == "" {
		c.TUI.ExportDir = "."
	}
	if c.TUI.LogFile == "" {
		c.TUI.LogFile = "it_inventory-tui.log"
	}
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("RATE_LIMIT_PER_SEC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_PER_SEC: %w", err)
		}
		c.Server.RateLimitPerSec = f
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.Storage.NatsURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.PostgresDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		c.TUI.ExportDir = v
	}
	if v := os.Getenv("TUI_LOG_FILE"); v != "" {
		c.TUI.LogFile = v
	}
	return nil
}

// NewLogger builds the slog logger described by l, writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(l.Level)}
	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
