package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies CASCADE_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known CASCADE_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Wallet ──
	setStr(&cfg.Wallet.PrivateKey, "CASCADE_WALLET_PRIVATE_KEY")
	setStr(&cfg.Wallet.EncryptedKeyPath, "CASCADE_WALLET_ENCRYPTED_KEY_PATH")
	setStr(&cfg.Wallet.KeyPassword, "CASCADE_WALLET_KEY_PASSWORD")
	setBool(&cfg.Wallet.Approve, "CASCADE_WALLET_APPROVE")
	setFloat64(&cfg.Wallet.InitialBalance, "CASCADE_WALLET_INITIAL_BALANCE")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "CASCADE_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "CASCADE_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "CASCADE_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "CASCADE_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "CASCADE_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "CASCADE_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "CASCADE_REDIS_TLS_ENABLED")

	// ── Audit ──
	setBool(&cfg.Audit.Enabled, "CASCADE_AUDIT_ENABLED")
	setStr(&cfg.Audit.DSN, "CASCADE_AUDIT_DSN")
	setStr(&cfg.Audit.Host, "CASCADE_AUDIT_HOST")
	setInt(&cfg.Audit.Port, "CASCADE_AUDIT_PORT")
	setStr(&cfg.Audit.Database, "CASCADE_AUDIT_DATABASE")
	setStr(&cfg.Audit.User, "CASCADE_AUDIT_USER")
	setStr(&cfg.Audit.Password, "CASCADE_AUDIT_PASSWORD")
	setStr(&cfg.Audit.SSLMode, "CASCADE_AUDIT_SSL_MODE")
	setInt(&cfg.Audit.PoolMaxConns, "CASCADE_AUDIT_POOL_MAX_CONNS")
	setInt(&cfg.Audit.PoolMinConns, "CASCADE_AUDIT_POOL_MIN_CONNS")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "CASCADE_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "CASCADE_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "CASCADE_S3_REGION")
	setStr(&cfg.S3.Bucket, "CASCADE_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "CASCADE_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "CASCADE_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "CASCADE_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "CASCADE_S3_FORCE_PATH_STYLE")

	// ── Drift ──
	setBool(&cfg.Drift.Enabled, "CASCADE_DRIFT_ENABLED")
	setDuration(&cfg.Drift.Interval, "CASCADE_DRIFT_INTERVAL")
	setFloat64(&cfg.Drift.TickChance, "CASCADE_DRIFT_TICK_CHANCE")
	setInt64(&cfg.Drift.Seed, "CASCADE_DRIFT_SEED")

	// ── Latency ──
	setDuration(&cfg.Latency.Read, "CASCADE_LATENCY_READ")
	setDuration(&cfg.Latency.Write, "CASCADE_LATENCY_WRITE")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "CASCADE_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "CASCADE_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "CASCADE_SERVER_CORS_ORIGINS")

	// ── Notify ──
	setStringSlice(&cfg.Notify.Events, "CASCADE_NOTIFY_EVENTS")
	setInt(&cfg.Notify.RingCapacity, "CASCADE_NOTIFY_RING_CAPACITY")

	// ── Top-level ──
	setStr(&cfg.Mode, "CASCADE_MODE")
	setStr(&cfg.LogLevel, "CASCADE_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
