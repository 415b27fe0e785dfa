package market

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

const (
	// oddsFloor and oddsCeil bound the drift: a swap is skipped when it would
	// drop the donor below the floor or push the receiver above the ceiling.
	oddsFloor = 2
	oddsCeil  = 98

	// maxSwing is the largest odds transfer per tick, in percentage points.
	maxSwing = 3

	// maxVolumePerTick caps the random volume added each mutating tick.
	maxVolumePerTick = 1000
)

// Drift is the background task that emulates live trading pressure. It holds
// no state of its own beyond its RNG; every tick funnels through the store's
// mutation lock like any other write.
type Drift struct {
	store    *Store
	interval time.Duration
	chance   float64
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewDrift creates the drift task. chance is the per-tick probability of
// acting at all, in [0,1]. A nil rng gets a time-seeded source.
func NewDrift(store *Store, interval time.Duration, chance float64, rng *rand.Rand, logger *slog.Logger) *Drift {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Drift{
		store:    store,
		interval: interval,
		chance:   chance,
		rng:      rng,
		logger:   logger.With(slog.String("component", "drift")),
	}
}

// Run ticks until the context is cancelled. Each tick first sweeps expired
// markets, then perturbs one active market with probability chance.
func (d *Drift) Run(ctx context.Context) error {
	d.logger.InfoContext(ctx, "drift started",
		slog.Duration("interval", d.interval),
		slog.Float64("chance", d.chance),
	)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("drift stopped")
			return ctx.Err()
		case now := <-ticker.C:
			d.store.MarkExpired(now)
			if d.rng.Float64() < d.chance {
				d.store.driftTick(d.rng, now)
			}
		}
	}
}

// driftTick perturbs one active market: a zero-sum odds swap between two
// distinct outcomes (skipped when it would breach the bounds), a random
// volume bump on the market total and the first chosen outcome's stake, and
// a new bounded history point. Returns false when no market qualifies.
func (s *Store) driftTick(rng *rand.Rand, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []*domain.Market
	for _, m := range s.markets {
		if m.Status == domain.MarketStatusActive && len(m.Outcomes) >= 2 {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	m := candidates[rng.Intn(len(candidates))]

	i := rng.Intn(len(m.Outcomes))
	j := rng.Intn(len(m.Outcomes))
	for j == i {
		j = rng.Intn(len(m.Outcomes))
	}

	swing := float64(1 + rng.Intn(maxSwing))
	if m.Outcomes[i].Odds-swing >= oddsFloor && m.Outcomes[j].Odds+swing <= oddsCeil {
		m.Outcomes[i].Odds -= swing
		m.Outcomes[j].Odds += swing
	}
	// A swap outside the bounds is a silent no-op, not an error; volume and
	// history still move this tick.

	volume := float64(rng.Intn(maxVolumePerTick))
	m.TotalStaked += volume
	m.Outcomes[i].TotalStaked += volume

	point := domain.HistoryPoint{
		Timestamp:   now,
		OutcomeOdds: make(map[string]float64, len(m.Outcomes)),
	}
	for _, o := range m.Outcomes {
		point.OutcomeOdds[o.ID] = o.Odds
	}
	m.PriceHistory = append(m.PriceHistory, point)
	if len(m.PriceHistory) > historyCap {
		m.PriceHistory = m.PriceHistory[1:]
	}

	s.notifyLocked()
	return true
}
