package market

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

func TestDriftTickNoCandidates(t *testing.T) {
	s := newTestStore(t)
	rng := rand.New(rand.NewSource(1))

	assert.False(t, s.driftTick(rng, time.Now()))

	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)
	_, err = s.Resolve(m.ID, m.Outcomes[0].ID, nil)
	require.NoError(t, err)

	// Resolved markets are never drifted.
	assert.False(t, s.driftTick(rng, time.Now()))
}

func TestDriftTickZeroSum(t *testing.T) {
	s := newTestStore(t)
	rng := rand.New(rand.NewSource(42))

	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		require.True(t, s.driftTick(rng, time.Now()))
	}

	got, err := s.GetByID(m.ID)
	require.NoError(t, err)

	var sum float64
	for _, o := range got.Outcomes {
		sum += o.Odds
		assert.GreaterOrEqual(t, o.Odds, float64(oddsFloor))
		assert.LessOrEqual(t, o.Odds, float64(oddsCeil))
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestDriftTickVolumeAndHistory(t *testing.T) {
	s := newTestStore(t)
	rng := rand.New(rand.NewSource(7))

	m, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)
	before, err := s.GetByID(m.ID)
	require.NoError(t, err)

	for i := 0; i < historyCap+10; i++ {
		require.True(t, s.driftTick(rng, time.Now()))
	}

	got, err := s.GetByID(m.ID)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, got.TotalStaked, before.TotalStaked)
	assert.LessOrEqual(t, len(got.PriceHistory), historyCap)

	// The newest point reflects the live odds.
	last := got.PriceHistory[len(got.PriceHistory)-1]
	for _, o := range got.Outcomes {
		assert.Equal(t, o.Odds, last.OutcomeOdds[o.ID])
	}
}

func TestDriftTickPublishesSnapshot(t *testing.T) {
	s := newTestStore(t)
	rng := rand.New(rand.NewSource(3))

	_, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	var calls int
	cancel := s.Subscribe(func([]domain.Market) { calls++ })
	defer cancel()
	require.Equal(t, 1, calls)

	require.True(t, s.driftTick(rng, time.Now()))
	assert.Equal(t, 2, calls)
}

func TestDriftRunStopsOnCancel(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateMarket(createParams(), time.Now())
	require.NoError(t, err)

	d := NewDrift(s, time.Millisecond, 1.0, rand.New(rand.NewSource(9)), testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = d.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
