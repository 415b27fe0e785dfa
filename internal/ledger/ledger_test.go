package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadeprotocol/cascade/internal/domain"
	"github.com/cascadeprotocol/cascade/internal/market"
	"github.com/cascadeprotocol/cascade/internal/store/memory"
	"github.com/cascadeprotocol/cascade/internal/wallet"
)

const testAddress = "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store    *market.Store
	ledger   *Ledger
	sessions *memory.SessionStore
	audit    *memory.AuditLog
	market   domain.Market
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := market.NewStore(testLogger())
	m, err := store.CreateMarket(market.CreateParams{
		Question:         "Will it happen?",
		OutcomeNames:     []string{"Yes", "No"},
		ExpiryTime:       time.Now().Add(24 * time.Hour),
		InitialLiquidity: 100,
		Category:         domain.CategoryCrypto,
	}, time.Now())
	require.NoError(t, err)

	provider, err := wallet.NewStatic(testAddress)
	require.NoError(t, err)

	sessions := memory.NewSessionStore()
	audit := memory.NewAuditLog()

	return &fixture{
		store:    store,
		sessions: sessions,
		audit:    audit,
		market:   m,
		ledger: New(store, Deps{
			Wallet:         provider,
			Sessions:       sessions,
			Audit:          audit,
			Logger:         testLogger(),
			InitialBalance: 2500,
		}),
	}
}

func TestConnect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.ledger.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, testAddress, user.Address)
	assert.Equal(t, 2500.0, user.Balance)
	assert.Empty(t, user.Bets)

	// The session is persisted immediately.
	saved, err := f.sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testAddress, saved.Address)
}

func TestConnectRejected(t *testing.T) {
	f := newFixture(t)

	provider, err := wallet.New(wallet.Config{Approve: false})
	require.NoError(t, err)
	l := New(f.store, Deps{
		Wallet:         provider,
		Sessions:       memory.NewSessionStore(),
		Logger:         testLogger(),
		InitialBalance: 2500,
	})

	_, err = l.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrUserRejected)

	_, err = l.CurrentUser()
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestPlaceBetLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yes := f.market.Outcomes[0]

	_, err := f.ledger.Connect(ctx)
	require.NoError(t, err)

	bet, err := f.ledger.PlaceBet(ctx, f.market.ID, yes.ID, 20)
	require.NoError(t, err)

	assert.Equal(t, domain.BetStatusConfirmed, bet.Status)
	assert.Equal(t, 20.0, bet.Amount)
	assert.Equal(t, 40.0, bet.PotentialPayout) // 20 * 100/50
	assert.False(t, bet.Claimed)

	user, err := f.ledger.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 2480.0, user.Balance)
	require.Len(t, user.Bets, 1)

	got, err := f.store.GetByID(f.market.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.TotalStaked)
	assert.Equal(t, 70.0, got.Outcomes[0].TotalStaked)

	// The payout multiplier is locked at placement: resolving the market
	// later pays exactly PotentialPayout regardless of odds changes.
	distributed, err := f.ledger.ResolveMarket(ctx, f.market.ID, yes.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, distributed)

	user, err = f.ledger.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 2520.0, user.Balance) // 2480 + 40
	assert.Equal(t, domain.BetStatusWon, user.Bets[0].Status)
	assert.True(t, user.Bets[0].Claimed)
}

func TestPlaceBetErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yes := f.market.Outcomes[0]

	_, err := f.ledger.PlaceBet(ctx, f.market.ID, yes.ID, 20)
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	_, err = f.ledger.Connect(ctx)
	require.NoError(t, err)

	_, err = f.ledger.PlaceBet(ctx, f.market.ID, yes.ID, 5000)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	_, err = f.ledger.PlaceBet(ctx, "m-missing", yes.ID, 20)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A failed placement leaves balance and bets untouched.
	user, err := f.ledger.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 2500.0, user.Balance)
	assert.Empty(t, user.Bets)
}

func TestResolveSettlesLosingBet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yes, no := f.market.Outcomes[0], f.market.Outcomes[1]

	_, err := f.ledger.Connect(ctx)
	require.NoError(t, err)

	bet, err := f.ledger.PlaceBet(ctx, f.market.ID, no.ID, 30)
	require.NoError(t, err)

	distributed, err := f.ledger.ResolveMarket(ctx, f.market.ID, yes.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, distributed)

	user, err := f.ledger.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 2470.0, user.Balance)
	assert.Equal(t, domain.BetStatusLost, user.Bets[0].Status)

	// A lost bet can never be claimed.
	_, err = f.ledger.ClaimWinnings(ctx, bet.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolveTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yes := f.market.Outcomes[0]

	_, err := f.ledger.Connect(ctx)
	require.NoError(t, err)

	_, err = f.ledger.ResolveMarket(ctx, f.market.ID, yes.ID)
	require.NoError(t, err)

	_, err = f.ledger.ResolveMarket(ctx, f.market.ID, yes.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolveWithoutSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Resolution is a market operation; it works with no connected user and
	// distributes nothing.
	distributed, err := f.ledger.ResolveMarket(ctx, f.market.ID, f.market.Outcomes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, distributed)
}

func TestClaimWinnings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Seed a persisted session holding a won-but-unclaimed bet, as left
	// behind by a resolution that ran while the user was disconnected.
	wonBet := domain.Bet{
		ID:              "bet-unclaimed",
		MarketID:        f.market.ID,
		OutcomeID:       f.market.Outcomes[0].ID,
		Amount:          10,
		PotentialPayout: 20,
		Status:          domain.BetStatusWon,
		PlacedAt:        time.Now(),
	}
	require.NoError(t, f.sessions.Save(ctx, domain.User{
		Address: testAddress,
		Balance: 1000,
		Bets:    []domain.Bet{wonBet},
	}))

	user, err := f.ledger.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, user.Balance)

	payout, err := f.ledger.ClaimWinnings(ctx, wonBet.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, payout)

	user, err = f.ledger.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, 1020.0, user.Balance)
	assert.True(t, user.Bets[0].Claimed)

	// Claiming is a one-way latch.
	_, err = f.ledger.ClaimWinnings(ctx, wonBet.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	_, err = f.ledger.ClaimWinnings(ctx, "bet-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestoreEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Restore(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDisconnect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Connect(ctx)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Disconnect(ctx))

	_, err = f.ledger.CurrentUser()
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	_, err = f.sessions.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditTrail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	yes := f.market.Outcomes[0]

	_, err := f.ledger.Connect(ctx)
	require.NoError(t, err)
	_, err = f.ledger.PlaceBet(ctx, f.market.ID, yes.ID, 20)
	require.NoError(t, err)
	_, err = f.ledger.ResolveMarket(ctx, f.market.ID, yes.ID)
	require.NoError(t, err)

	entries := f.audit.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "bet_placed", entries[0].Event)
	assert.Equal(t, "market_resolved", entries[1].Event)
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)

	entries := f.ledger.Leaderboard(context.Background())
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestAnalysis(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	text, err := f.ledger.Analysis(ctx, f.market.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	_, err = f.ledger.Analysis(ctx, "m-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
