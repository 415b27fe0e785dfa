package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cascadeprotocol/cascade/internal/domain"
	"github.com/cascadeprotocol/cascade/internal/server"
	"github.com/cascadeprotocol/cascade/internal/server/handler"
)

// ServeMode runs the full daemon: the WebSocket hub, the odds drift loop, and
// the HTTP API server. It blocks until the context is cancelled or a
// component fails.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return deps.Hub.Run(ctx)
	})

	if deps.Drift != nil {
		g.Go(func() error {
			return deps.Drift.Run(ctx)
		})
	}

	if a.cfg.Server.Enabled {
		srv := server.NewServer(
			server.Config{
				Port:        a.cfg.Server.Port,
				CORSOrigins: a.cfg.Server.CORSOrigins,
			},
			server.Handlers{
				Health:        handler.NewHealthHandler(a.logger),
				Markets:       handler.NewMarketHandler(deps.MarketStore, deps.Ledger, a.logger),
				Bets:          handler.NewBetHandler(deps.Ledger, a.logger),
				Session:       handler.NewSessionHandler(deps.Ledger, a.logger),
				Leaderboard:   handler.NewLeaderboardHandler(deps.Ledger, a.logger),
				Notifications: handler.NewNotificationHandler(deps.Ring, a.logger),
			},
			deps.Hub,
			a.logger,
		)

		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// SimMode runs the market simulation headless: the drift loop mutates odds
// and a local subscriber logs each published snapshot. Useful for soak
// testing the store without exposing the API.
func (a *App) SimMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting sim mode")

	if deps.Drift == nil {
		return errors.New("app: sim mode requires drift.enabled")
	}

	g, ctx := errgroup.WithContext(ctx)

	unsubscribe := deps.MarketStore.Subscribe(func(markets []domain.Market) {
		active := 0
		for i := range markets {
			if markets[i].Status == domain.MarketStatusActive {
				active++
			}
		}
		a.logger.Debug("snapshot published",
			slog.Int("markets", len(markets)),
			slog.Int("active", active),
		)
	})
	defer unsubscribe()

	g.Go(func() error {
		return deps.Drift.Run(ctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
