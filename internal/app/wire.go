package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	s3blob "github.com/cascadeprotocol/cascade/internal/blob/s3"
	"github.com/cascadeprotocol/cascade/internal/config"
	"github.com/cascadeprotocol/cascade/internal/domain"
	"github.com/cascadeprotocol/cascade/internal/ledger"
	"github.com/cascadeprotocol/cascade/internal/market"
	"github.com/cascadeprotocol/cascade/internal/notify"
	"github.com/cascadeprotocol/cascade/internal/seed"
	"github.com/cascadeprotocol/cascade/internal/server/ws"
	"github.com/cascadeprotocol/cascade/internal/store/memory"
	"github.com/cascadeprotocol/cascade/internal/store/postgres"
	"github.com/cascadeprotocol/cascade/internal/store/redis"
	"github.com/cascadeprotocol/cascade/internal/wallet"
)

// Dependencies bundles every component that the application modes need to
// operate. It is constructed by Wire and torn down by the returned cleanup
// function.
type Dependencies struct {
	MarketStore *market.Store
	Ledger      *ledger.Ledger
	Drift       *market.Drift
	Hub         *ws.Hub
	Ring        *notify.Ring
	Notifier    *notify.Notifier
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := slog.Default()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Session store: Redis when enabled, in-memory otherwise ---
	var sessions domain.SessionStore
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		sessions = redis.NewSessionStore(redisClient)
	} else {
		sessions = memory.NewSessionStore()
	}

	// --- Audit log: PostgreSQL when enabled, in-memory otherwise ---
	var audit domain.AuditStore
	if cfg.Audit.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Audit.DSN,
			Host:     cfg.Audit.Host,
			Port:     cfg.Audit.Port,
			Database: cfg.Audit.Database,
			User:     cfg.Audit.User,
			Password: cfg.Audit.Password,
			SSLMode:  cfg.Audit.SSLMode,
			MaxConns: cfg.Audit.PoolMaxConns,
			MinConns: cfg.Audit.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if err := pgClient.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres schema: %w", err)
		}
		audit = postgres.NewAuditStore(pgClient.Pool())
	} else {
		audit = memory.NewAuditLog()
	}

	// --- History archiver: S3 when enabled ---
	var archiver domain.HistoryArchiver
	if cfg.S3.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		archiver = s3blob.NewHistoryArchiver(s3Client)
	}

	// --- Wallet provider ---
	walletProvider, err := wallet.New(wallet.Config{
		PrivateKey:       cfg.Wallet.PrivateKey,
		EncryptedKeyPath: cfg.Wallet.EncryptedKeyPath,
		KeyPassword:      cfg.Wallet.KeyPassword,
		Approve:          cfg.Wallet.Approve,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: wallet: %w", err)
	}

	// --- Notifications: ring buffer feed plus WebSocket push ---
	deps.Hub = ws.NewHub(logger)
	deps.Ring = notify.NewRing(cfg.Notify.RingCapacity)
	deps.Notifier = notify.New(
		[]notify.Sink{deps.Ring, deps.Hub},
		cfg.Notify.Events,
		logger,
	)

	// --- Market store seeded with the built-in markets ---
	now := time.Now()
	deps.MarketStore = market.NewStore(logger)
	deps.MarketStore.Bootstrap(seed.Markets(now), now)

	// Every committed mutation fans out to WebSocket clients.
	unsubscribe := deps.MarketStore.Subscribe(deps.Hub.BroadcastMarkets)
	closers = append(closers, unsubscribe)

	// --- Odds drift loop ---
	if cfg.Drift.Enabled {
		var rng *rand.Rand
		if cfg.Drift.Seed != 0 {
			rng = rand.New(rand.NewSource(cfg.Drift.Seed))
		}
		deps.Drift = market.NewDrift(
			deps.MarketStore,
			cfg.Drift.Interval.Duration,
			cfg.Drift.TickChance,
			rng,
			logger,
		)
	}

	// --- Ledger ---
	deps.Ledger = ledger.New(deps.MarketStore, ledger.Deps{
		Wallet:   walletProvider,
		Sessions: sessions,
		Audit:    audit,
		Archiver: archiver,
		Notifier: deps.Notifier,
		Logger:   logger,
		Latency: ledger.Latency{
			Read:  cfg.Latency.Read.Duration,
			Write: cfg.Latency.Write.Duration,
		},
		InitialBalance: cfg.Wallet.InitialBalance,
	})

	return deps, cleanup, nil
}
