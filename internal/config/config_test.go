package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphummel/it_inventory/internal/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "./it_inventory.db", cfg.Storage.Path)
	assert.Equal(t, "it_inventory", cfg.Storage.Bucket)
	assert.Equal(t, 5*time.Minute, cfg.Server.DeleteConfirmTTL())
	assert.InDelta(t, 20.0, cfg.Server.RateLimitPerSec, 0.0001)
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
	assert.Equal(t, ".", cfg.TUI.ExportDir)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
server:
  port: "9090"
  rate_limit_per_sec: 5
  rate_limit_burst: 10
  delete_confirm_ttl_seconds: 60
storage:
  driver: memory
log:
  level: debug
  format: text
tui:
  export_dir: /tmp/exports
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.InDelta(t, 5.0, cfg.Server.RateLimitPerSec, 0.0001)
	assert.Equal(t, 10, cfg.Server.RateLimitBurst)
	assert.Equal(t, time.Minute, cfg.Server.DeleteConfirmTTL())
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "/tmp/exports", cfg.TUI.ExportDir)
	// untouched keys still get defaults
	assert.Equal(t, "./it_inventory.db", cfg.Storage.Path)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := config.Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := config.Load(writeFile(t, "server: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_RateLimitDisabled(t *testing.T) {
	for name, rate := range map[string]string{"zero": "0", "negative": "-1"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load(writeFile(t, "server:\n  rate_limit_per_sec: "+rate+"\n"))
			require.NoError(t, err)
			assert.Zero(t, cfg.Server.RateLimitPerSec)
			assert.Zero(t, cfg.Server.RateLimitBurst)
		})
	}
}

func TestLoad_RateLimitDefaultsWhenUnset(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "server:\n  port: \"9000\"\n"))
	require.NoError(t, err)
	assert.InDelta(t, 20.0, cfg.Server.RateLimitPerSec, 0.0001)
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("STORE_DRIVER", "NATS")
	t.Setenv("DB_PATH", "/data/inv.db")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("DATABASE_URL", "postgres://inv@localhost/inv")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("RATE_LIMIT_PER_SEC", "2.5")
	t.Setenv("EXPORT_DIR", "/tmp/exports")
	t.Setenv("TUI_LOG_FILE", "/tmp/tui.log")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "nats", cfg.Storage.Driver)
	assert.Equal(t, "/data/inv.db", cfg.Storage.Path)
	assert.Equal(t, "nats://localhost:4222", cfg.Storage.NatsURL)
	assert.Equal(t, "postgres://inv@localhost/inv", cfg.Storage.PostgresDSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.InDelta(t, 2.5, cfg.Server.RateLimitPerSec, 0.0001)
	assert.Equal(t, "/tmp/exports", cfg.TUI.ExportDir)
	assert.Equal(t, "/tmp/tui.log", cfg.TUI.LogFile)
}

func TestApplyEnv_BadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_SEC", "fast")
	assert.Error(t, config.Default().ApplyEnv())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("dropped")
	assert.Zero(t, buf.Len(), "info should be filtered at warn level")

	logger.Warn("kept", "key", "value")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}
