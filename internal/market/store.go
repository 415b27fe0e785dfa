// Package market holds the authoritative in-memory market state. All
// mutation goes through Store methods guarded by a single mutex, which is the
// process-wide mutation queue: resolution and settlement run as one critical
// section, and subscribers never observe a partially applied state.
package market

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// historyCap bounds the per-market odds history; the oldest point is evicted
// on overflow.
const historyCap = 50

const (
	minOutcomes = 2
	maxOutcomes = 5
)

// CreateParams carries the inputs for CreateMarket.
type CreateParams struct {
	Question         string
	Description      string
	Rules            string
	ResolutionSource string
	OutcomeNames     []string
	ExpiryTime       time.Time
	InitialLiquidity float64
	Category         domain.MarketCategory
	// ParentID optionally links the new market under an existing one. An
	// unresolvable ParentID is ignored, matching the store's documented
	// behaviour.
	ParentID string
}

// Store is the single authoritative sequence of markets, in insertion order.
type Store struct {
	mu        sync.Mutex
	markets   []*domain.Market
	byID      map[string]*domain.Market
	subs      []subscription
	nextSubID uint64
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewStore creates an empty Store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		byID:   make(map[string]*domain.Market),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger.With(slog.String("component", "market_store")),
	}
}

// Bootstrap loads seed markets into an empty store, hydrating each market's
// odds history from its creation time up to now. A single snapshot is
// published after all seeds are loaded.
func (s *Store) Bootstrap(markets []domain.Market, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range markets {
		m := markets[i].Clone()
		if len(m.PriceHistory) == 0 {
			m.PriceHistory = generateHistory(m.Outcomes, m.CreatedAt, now, s.rng)
		}
		s.markets = append(s.markets, &m)
		s.byID[m.ID] = &m
	}

	s.logger.Info("store bootstrapped", slog.Int("markets", len(markets)))
	s.notifyLocked()
}

// CreateMarket creates a new Active market with outcomes evenly split: each
// outcome starts at odds 100/n and stake liquidity/n. If ParentID resolves to
// an existing market the new market ID is appended to that market's child
// list in the same critical section.
func (s *Store) CreateMarket(p CreateParams, now time.Time) (domain.Market, error) {
	if p.Question == "" {
		return domain.Market{}, fmt.Errorf("market: empty question: %w", domain.ErrInvalidArgument)
	}
	if n := len(p.OutcomeNames); n < minOutcomes || n > maxOutcomes {
		return domain.Market{}, fmt.Errorf("market: %d outcomes, want %d..%d: %w",
			n, minOutcomes, maxOutcomes, domain.ErrInvalidArgument)
	}
	if p.InitialLiquidity <= 0 {
		return domain.Market{}, fmt.Errorf("market: initial liquidity must be positive: %w", domain.ErrInvalidArgument)
	}
	if !p.Category.Valid() {
		return domain.Market{}, fmt.Errorf("market: unknown category %q: %w", p.Category, domain.ErrInvalidArgument)
	}

	n := float64(len(p.OutcomeNames))
	id := "m-" + uuid.NewString()

	outcomes := make([]domain.Outcome, len(p.OutcomeNames))
	for i, name := range p.OutcomeNames {
		outcomes[i] = domain.Outcome{
			ID:          fmt.Sprintf("o-%s-%d", id, i),
			Name:        name,
			Odds:        100 / n,
			TotalStaked: p.InitialLiquidity / n,
		}
	}

	m := domain.Market{
		ID:               id,
		Question:         p.Question,
		Description:      p.Description,
		Rules:            p.Rules,
		ResolutionSource: p.ResolutionSource,
		Category:         p.Category,
		Outcomes:         outcomes,
		TotalStaked:      p.InitialLiquidity,
		Status:           domain.MarketStatusActive,
		ExpiryTime:       p.ExpiryTime,
		ParentID:         p.ParentID,
		ChildMarketIDs:   []string{},
		CreatedAt:        now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m.PriceHistory = generateHistory(m.Outcomes, m.CreatedAt, now, s.rng)
	s.markets = append(s.markets, &m)
	s.byID[m.ID] = &m

	if p.ParentID != "" {
		if parent, ok := s.byID[p.ParentID]; ok {
			parent.ChildMarketIDs = append(parent.ChildMarketIDs, m.ID)
		}
		// An unresolvable parent leaves the new market orphaned rather than
		// failing creation.
	}

	s.logger.Info("market created",
		slog.String("market_id", m.ID),
		slog.String("category", string(m.Category)),
		slog.Int("outcomes", len(m.Outcomes)),
	)

	s.notifyLocked()
	return m.Clone(), nil
}

// Snapshot returns a defensive copy of all markets in insertion order.
func (s *Store) Snapshot() []domain.Market {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// GetByID returns a copy of a single market, or domain.ErrNotFound.
func (s *Store) GetByID(id string) (domain.Market, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return domain.Market{}, fmt.Errorf("market: %q: %w", id, domain.ErrNotFound)
	}
	return m.Clone(), nil
}

// ApplyBet records a stake of amount on the given outcome: both the outcome
// stake and the market total grow by amount in one step. It returns the
// outcome's odds at the instant of placement, which the ledger uses to lock
// in the fixed-odds payout.
func (s *Store) ApplyBet(marketID, outcomeID string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("market: bet amount must be positive: %w", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[marketID]
	if !ok {
		return 0, fmt.Errorf("market: %q: %w", marketID, domain.ErrNotFound)
	}
	if m.Status != domain.MarketStatusActive {
		return 0, fmt.Errorf("market: %q is %s: %w", marketID, m.Status, domain.ErrInvalidState)
	}
	o, ok := m.Outcome(outcomeID)
	if !ok {
		return 0, fmt.Errorf("market: outcome %q: %w", outcomeID, domain.ErrNotFound)
	}

	o.TotalStaked += amount
	m.TotalStaked += amount

	s.notifyLocked()
	return o.Odds, nil
}

// Resolve settles a market: the winning outcome's odds are forced to 100, all
// others to 0, and the status becomes Resolved. The settle callback runs with
// the resolved market inside the same critical section, before any snapshot
// is published, so observers never see a resolved market with unsettled bets.
func (s *Store) Resolve(marketID, winningOutcomeID string, settle func(m domain.Market)) (domain.Market, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[marketID]
	if !ok {
		return domain.Market{}, fmt.Errorf("market: %q: %w", marketID, domain.ErrNotFound)
	}
	if _, ok := m.Outcome(winningOutcomeID); !ok {
		return domain.Market{}, fmt.Errorf("market: outcome %q: %w", winningOutcomeID, domain.ErrNotFound)
	}
	if m.Status != domain.MarketStatusActive {
		return domain.Market{}, fmt.Errorf("market: %q is %s: %w", marketID, m.Status, domain.ErrInvalidState)
	}

	m.Status = domain.MarketStatusResolved
	m.WinningOutcomeID = winningOutcomeID
	for i := range m.Outcomes {
		if m.Outcomes[i].ID == winningOutcomeID {
			m.Outcomes[i].Odds = 100
		} else {
			m.Outcomes[i].Odds = 0
		}
	}

	resolved := m.Clone()
	if settle != nil {
		settle(resolved)
	}

	s.logger.Info("market resolved",
		slog.String("market_id", marketID),
		slog.String("winning_outcome_id", winningOutcomeID),
	)

	s.notifyLocked()
	return resolved, nil
}

// MarkExpired flips Active markets whose expiry has passed to Expired and
// returns how many changed. A snapshot is published only when at least one
// market changed.
func (s *Store) MarkExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, m := range s.markets {
		if m.Status == domain.MarketStatusActive && !m.ExpiryTime.IsZero() && m.ExpiryTime.Before(now) {
			m.Status = domain.MarketStatusExpired
			n++
		}
	}
	if n > 0 {
		s.logger.Info("markets expired", slog.Int("count", n))
		s.notifyLocked()
	}
	return n
}

// snapshotLocked clones every market. The caller must hold s.mu.
func (s *Store) snapshotLocked() []domain.Market {
	out := make([]domain.Market, len(s.markets))
	for i, m := range s.markets {
		out[i] = m.Clone()
	}
	return out
}
