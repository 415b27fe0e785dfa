// Package config defines the top-level configuration for the cascade daemon
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by CASCADE_* environment variables.
type Config struct {
	Wallet   WalletConfig  `toml:"wallet"`
	Redis    RedisConfig   `toml:"redis"`
	Audit    AuditConfig   `toml:"audit"`
	S3       S3Config      `toml:"s3"`
	Drift    DriftConfig   `toml:"drift"`
	Latency  LatencyConfig `toml:"latency"`
	Server   ServerConfig  `toml:"server"`
	Notify   NotifyConfig  `toml:"notify"`
	Mode     string        `toml:"mode"`
	LogLevel string        `toml:"log_level"`
}

// WalletConfig holds wallet credentials and the simulated starting balance.
type WalletConfig struct {
	PrivateKey       string  `toml:"private_key"`
	EncryptedKeyPath string  `toml:"encrypted_key_path"`
	KeyPassword      string  `toml:"key_password"`
	Approve          bool    `toml:"approve"`
	InitialBalance   float64 `toml:"initial_balance"`
}

// RedisConfig holds Redis connection parameters for session persistence.
// When Enabled is false the daemon falls back to an in-memory session store.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// AuditConfig holds PostgreSQL connection parameters for the append-only
// audit log. When Enabled is false audit entries go to an in-memory log.
type AuditConfig struct {
	Enabled      bool   `toml:"enabled"`
	DSN          string `toml:"dsn"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Database     string `toml:"database"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	SSLMode      string `toml:"ssl_mode"`
	PoolMaxConns int    `toml:"pool_max_conns"`
	PoolMinConns int    `toml:"pool_min_conns"`
}

// S3Config holds S3-compatible object storage parameters for archiving the
// price history of resolved markets.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// DriftConfig controls the background odds drift loop.
type DriftConfig struct {
	Enabled    bool     `toml:"enabled"`
	Interval   duration `toml:"interval"`
	TickChance float64  `toml:"tick_chance"`
	Seed       int64    `toml:"seed"`
}

// LatencyConfig holds the artificial delays applied to ledger operations so
// the daemon behaves like a remote chain rather than a local map.
type LatencyConfig struct {
	Read  duration `toml:"read"`
	Write duration `toml:"write"`
}

// duration is a wrapper around time.Duration that supports TOML string decoding
// (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// NotifyConfig controls the in-process notification feed.
type NotifyConfig struct {
	Events       []string `toml:"events"`
	RingCapacity int      `toml:"ring_capacity"`
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Wallet: WalletConfig{
			Approve:        true,
			InitialBalance: 2500,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		Audit: AuditConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         5432,
			Database:     "cascade",
			User:         "postgres",
			SSLMode:      "disable",
			PoolMaxConns: 10,
			PoolMinConns: 2,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "cascade-history",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Drift: DriftConfig{
			Enabled:    true,
			Interval:   duration{2500 * time.Millisecond},
			TickChance: 0.7,
		},
		Latency: LatencyConfig{
			Read:  duration{500 * time.Millisecond},
			Write: duration{1200 * time.Millisecond},
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Notify: NotifyConfig{
			Events:       []string{"success", "error", "info"},
			RingCapacity: 100,
		},
		Mode:     "serve",
		LogLevel: "info",
	}
}

var validModes = map[string]bool{
	"serve": true,
	"sim":   true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for internal consistency and returns an
// error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: serve, sim)", c.Mode))
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Wallet.EncryptedKeyPath != "" && c.Wallet.KeyPassword == "" {
		errs = append(errs, "wallet: key_password is required when encrypted_key_path is set")
	}
	if c.Wallet.InitialBalance < 0 {
		errs = append(errs, fmt.Sprintf("wallet: initial_balance must not be negative, got %g", c.Wallet.InitialBalance))
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if c.Audit.Enabled && strings.TrimSpace(c.Audit.DSN) == "" {
		if c.Audit.Host == "" {
			errs = append(errs, "audit: host must not be empty (or set audit.dsn)")
		}
		if c.Audit.Port <= 0 || c.Audit.Port > 65535 {
			errs = append(errs, fmt.Sprintf("audit: port must be 1-65535, got %d", c.Audit.Port))
		}
		if c.Audit.Database == "" {
			errs = append(errs, "audit: database must not be empty")
		}
	}
	if c.Audit.Enabled && c.Audit.PoolMaxConns < 1 {
		errs = append(errs, "audit: pool_max_conns must be >= 1")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty")
		}
		if c.S3.Region == "" {
			errs = append(errs, "s3: region must not be empty")
		}
	}

	if c.Drift.Enabled {
		if c.Drift.Interval.Duration <= 0 {
			errs = append(errs, "drift: interval must be positive")
		}
		if c.Drift.TickChance < 0 || c.Drift.TickChance > 1 {
			errs = append(errs, fmt.Sprintf("drift: tick_chance must be in [0, 1], got %g", c.Drift.TickChance))
		}
	}

	if c.Latency.Read.Duration < 0 || c.Latency.Write.Duration < 0 {
		errs = append(errs, "latency: read and write must not be negative")
	}

	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	if c.Notify.RingCapacity < 1 {
		errs = append(errs, "notify: ring_capacity must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
