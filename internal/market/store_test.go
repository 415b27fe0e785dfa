package market

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testLogger())
}

func createParams(outcomes ...string) CreateParams {
	if len(outcomes) == 0 {
		outcomes = []string{"Yes", "No"}
	}
	return CreateParams{
		Question:         "Will it happen?",
		OutcomeNames:     outcomes,
		ExpiryTime:       time.Now().Add(24 * time.Hour),
		InitialLiquidity: 100,
		Category:         domain.CategoryCrypto,
	}
}

func TestCreateMarketEvenSplit(t *testing.T) {
	s := newTestStore(t)

	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, domain.MarketStatusActive, m.Status)
	require.Len(t, m.Outcomes, 2)
	for _, o := range m.Outcomes {
		assert.Equal(t, 50.0, o.Odds)
		assert.Equal(t, 50.0, o.TotalStaked)
	}
	assert.Equal(t, 100.0, m.TotalStaked)
	assert.NotEmpty(t, m.PriceHistory)
	assert.Empty(t, m.WinningOutcomeID)
}

func TestCreateMarketValidation(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	p := createParams()
	p.Question = ""
	_, err := s.CreateMarket(p, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = s.CreateMarket(createParams("Only"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = s.CreateMarket(createParams("a", "b", "c", "d", "e", "f"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	p = createParams()
	p.InitialLiquidity = 0
	_, err = s.CreateMarket(p, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	p = createParams()
	p.Category = "astrology"
	_, err = s.CreateMarket(p, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCreateMarketParentLink(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	parent, err := s.CreateMarket(createParams(), now)
	require.NoError(t, err)

	p := createParams()
	p.ParentID = parent.ID
	child, err := s.CreateMarket(p, now)
	require.NoError(t, err)

	got, err := s.GetByID(parent.ID)
	require.NoError(t, err)
	assert.Contains(t, got.ChildMarketIDs, child.ID)

	// An unresolvable parent is ignored, not an error.
	p = createParams()
	p.ParentID = "m-missing"
	orphan, err := s.CreateMarket(p, now)
	require.NoError(t, err)
	assert.Equal(t, "m-missing", orphan.ParentID)
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetByID("m-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyBet(t *testing.T) {
	s := newTestStore(t)
	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	odds, err := s.ApplyBet(m.ID, m.Outcomes[0].ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 50.0, odds)

	got, err := s.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.Outcomes[0].TotalStaked)
	assert.Equal(t, 50.0, got.Outcomes[1].TotalStaked)
	assert.Equal(t, 120.0, got.TotalStaked)
}

func TestApplyBetErrors(t *testing.T) {
	s := newTestStore(t)
	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	_, err = s.ApplyBet(m.ID, m.Outcomes[0].ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = s.ApplyBet("m-missing", m.Outcomes[0].ID, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.ApplyBet(m.ID, "o-missing", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Resolve(m.ID, m.Outcomes[0].ID, nil)
	require.NoError(t, err)
	_, err = s.ApplyBet(m.ID, m.Outcomes[0].ID, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolve(t *testing.T) {
	s := newTestStore(t)
	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)
	winner := m.Outcomes[0].ID

	var settled bool
	resolved, err := s.Resolve(m.ID, winner, func(rm domain.Market) {
		settled = true
		assert.Equal(t, domain.MarketStatusResolved, rm.Status)
		assert.Equal(t, winner, rm.WinningOutcomeID)
	})
	require.NoError(t, err)
	assert.True(t, settled)

	assert.Equal(t, domain.MarketStatusResolved, resolved.Status)
	assert.Equal(t, 100.0, resolved.Outcomes[0].Odds)
	assert.Equal(t, 0.0, resolved.Outcomes[1].Odds)
}

func TestResolveErrors(t *testing.T) {
	s := newTestStore(t)
	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	_, err = s.Resolve("m-missing", m.Outcomes[0].ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Resolve(m.ID, "o-missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Resolve(m.ID, m.Outcomes[0].ID, nil)
	require.NoError(t, err)

	// Second resolution of the same market is rejected.
	_, err = s.Resolve(m.ID, m.Outcomes[0].ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Unknown outcome wins over the state check on an already-resolved market.
	_, err = s.Resolve(m.ID, "o-missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveSettlementVisibleAtomically(t *testing.T) {
	s := newTestStore(t)
	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)
	winner := m.Outcomes[0].ID

	// Every snapshot that shows the market as resolved must have been
	// published after the settle callback ran.
	settled := false
	var sawResolvedBeforeSettle bool
	cancel := s.Subscribe(func(markets []domain.Market) {
		for _, sm := range markets {
			if sm.ID == m.ID && sm.Status == domain.MarketStatusResolved && !settled {
				sawResolvedBeforeSettle = true
			}
		}
	})
	defer cancel()

	_, err = s.Resolve(m.ID, winner, func(domain.Market) { settled = true })
	require.NoError(t, err)
	assert.False(t, sawResolvedBeforeSettle)
}

func TestMarkExpired(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	p := createParams()
	p.ExpiryTime = now.Add(-time.Hour)
	expired, err := s.CreateMarket(p, now.Add(-2*time.Hour))
	require.NoError(t, err)

	fresh, err := s.CreateMarket(createParams(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, s.MarkExpired(now))
	assert.Equal(t, 0, s.MarkExpired(now))

	got, err := s.GetByID(expired.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MarketStatusExpired, got.Status)

	got, err = s.GetByID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MarketStatusActive, got.Status)
}

func TestSubscribeInitialSnapshot(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	var got [][]domain.Market
	cancel := s.Subscribe(func(markets []domain.Market) {
		got = append(got, markets)
	})
	defer cancel()

	// The initial snapshot arrives synchronously inside Subscribe.
	require.Len(t, got, 1)
	assert.Len(t, got[0], 1)
}

func TestSubscribeOnePerMutation(t *testing.T) {
	s := newTestStore(t)

	var calls int
	cancel := s.Subscribe(func([]domain.Market) { calls++ })
	require.Equal(t, 1, calls)

	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, err = s.ApplyBet(m.ID, m.Outcomes[0].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	_, err = s.Resolve(m.ID, m.Outcomes[0].ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)

	// A failed mutation publishes nothing.
	_, err = s.ApplyBet(m.ID, m.Outcomes[0].ID, 10)
	require.Error(t, err)
	assert.Equal(t, 4, calls)

	cancel()
	cancel() // second cancel is a no-op

	_, err = s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestSubscribeSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)
	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	var last []domain.Market
	cancel := s.Subscribe(func(markets []domain.Market) { last = markets })
	defer cancel()

	require.Len(t, last, 1)
	last[0].Outcomes[0].Odds = -1
	last[0].Question = "tampered"

	got, err := s.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Outcomes[0].Odds)
	assert.Equal(t, "Will it happen?", got.Question)
}

func TestBootstrapHydratesHistory(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	seedMarket := domain.Market{
		ID:       "m-seed",
		Question: "Seeded?",
		Status:   domain.MarketStatusActive,
		Category: domain.CategoryTech,
		Outcomes: []domain.Outcome{
			{ID: "o-seed-a", Name: "Yes", Odds: 60, TotalStaked: 600},
			{ID: "o-seed-b", Name: "No", Odds: 40, TotalStaked: 400},
		},
		TotalStaked: 1000,
		CreatedAt:   now.Add(-48 * time.Hour),
		ExpiryTime:  now.Add(48 * time.Hour),
	}

	var calls int
	cancel := s.Subscribe(func([]domain.Market) { calls++ })
	defer cancel()

	s.Bootstrap([]domain.Market{seedMarket}, now)
	assert.Equal(t, 2, calls) // initial snapshot plus one for the whole bootstrap

	got, err := s.GetByID("m-seed")
	require.NoError(t, err)
	require.NotEmpty(t, got.PriceHistory)

	first := got.PriceHistory[0]
	assert.Equal(t, 60.0, first.OutcomeOdds["o-seed-a"])
	assert.Equal(t, 40.0, first.OutcomeOdds["o-seed-b"])
	for _, p := range got.PriceHistory {
		for _, v := range p.OutcomeOdds {
			assert.GreaterOrEqual(t, v, 1.0)
			assert.LessOrEqual(t, v, 99.0)
		}
	}
}
