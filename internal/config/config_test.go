package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "serve", cfg.Mode)
	assert.Equal(t, 2500*time.Millisecond, cfg.Drift.Interval.Duration)
	assert.Equal(t, 0.7, cfg.Drift.TickChance)
	assert.Equal(t, 2500.0, cfg.Wallet.InitialBalance)
}

func TestValidateErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "bogus"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")

	cfg = Defaults()
	cfg.Drift.TickChance = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Wallet.EncryptedKeyPath = "/tmp/key.json"
	cfg.Wallet.KeyPassword = ""
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Notify.RingCapacity = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode = "sim"
log_level = "debug"

[drift]
interval = "1s"
tick_chance = 0.5

[wallet]
initial_balance = 100.0
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sim", cfg.Mode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Drift.Interval.Duration)
	assert.Equal(t, 0.5, cfg.Drift.TickChance)
	assert.Equal(t, 100.0, cfg.Wallet.InitialBalance)

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CASCADE_MODE", "sim")
	t.Setenv("CASCADE_DRIFT_INTERVAL", "750ms")
	t.Setenv("CASCADE_WALLET_INITIAL_BALANCE", "42.5")
	t.Setenv("CASCADE_SERVER_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("CASCADE_REDIS_ENABLED", "true")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	assert.Equal(t, "sim", cfg.Mode)
	assert.Equal(t, 750*time.Millisecond, cfg.Drift.Interval.Duration)
	assert.Equal(t, 42.5, cfg.Wallet.InitialBalance)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Redis.Enabled)
}
