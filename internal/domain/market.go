package domain

import "time"

// MarketStatus represents the lifecycle state of a market.
type MarketStatus string

const (
	MarketStatusActive   MarketStatus = "active"
	MarketStatusResolved MarketStatus = "resolved"
	MarketStatusExpired  MarketStatus = "expired"
)

// MarketCategory classifies a market for browsing and filtering.
type MarketCategory string

const (
	CategoryCrypto    MarketCategory = "crypto"
	CategoryPolitics  MarketCategory = "politics"
	CategoryEconomics MarketCategory = "economics"
	CategoryTech      MarketCategory = "tech"
	CategorySports    MarketCategory = "sports"
	CategoryOther     MarketCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c MarketCategory) Valid() bool {
	switch c {
	case CategoryCrypto, CategoryPolitics, CategoryEconomics,
		CategoryTech, CategorySports, CategoryOther:
		return true
	}
	return false
}

// Outcome is one possible resolution of a market. Odds is a live probability
// expressed as a percentage in [0,100]; TotalStaked accumulates the amount
// ever staked on this outcome.
type Outcome struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Odds        float64 `json:"odds"`
	TotalStaked float64 `json:"totalStaked"`
}

// HistoryPoint captures every outcome's odds at a single point in time.
// Per-market history is append-only and bounded; the oldest point is evicted
// on overflow.
type HistoryPoint struct {
	Timestamp   time.Time          `json:"timestamp"`
	OutcomeOdds map[string]float64 `json:"outcomeOdds"`
}

// Market is a single prediction question with a fixed set of mutually
// exclusive outcomes. TotalStaked is derived and must always equal the sum of
// the outcome stakes.
type Market struct {
	ID               string         `json:"id"`
	Question         string         `json:"question"`
	Description      string         `json:"description,omitempty"`
	Rules            string         `json:"rules,omitempty"`
	ResolutionSource string         `json:"resolutionSource,omitempty"`
	Category         MarketCategory `json:"category"`
	Outcomes         []Outcome      `json:"outcomes"`
	TotalStaked      float64        `json:"totalStaked"`
	Status           MarketStatus   `json:"status"`
	ExpiryTime       time.Time      `json:"expiryTime"`
	WinningOutcomeID string         `json:"winningOutcomeId,omitempty"`
	ParentID         string         `json:"parentId,omitempty"`
	ChildMarketIDs   []string       `json:"childMarketIds"`
	CreatedAt        time.Time      `json:"createdAt"`
	PriceHistory     []HistoryPoint `json:"priceHistory"`
}

// Outcome returns the outcome with the given ID, or false if the market has
// no such outcome.
func (m *Market) Outcome(id string) (*Outcome, bool) {
	for i := range m.Outcomes {
		if m.Outcomes[i].ID == id {
			return &m.Outcomes[i], true
		}
	}
	return nil, false
}

// OutcomeStakeSum returns the sum of the individual outcome stakes. It must
// equal TotalStaked after every mutation.
func (m *Market) OutcomeStakeSum() float64 {
	var sum float64
	for _, o := range m.Outcomes {
		sum += o.TotalStaked
	}
	return sum
}

// Clone returns a deep copy of the market so that snapshots handed to
// observers never alias store-owned memory.
func (m *Market) Clone() Market {
	out := *m

	out.Outcomes = make([]Outcome, len(m.Outcomes))
	copy(out.Outcomes, m.Outcomes)

	out.ChildMarketIDs = make([]string, len(m.ChildMarketIDs))
	copy(out.ChildMarketIDs, m.ChildMarketIDs)

	out.PriceHistory = make([]HistoryPoint, len(m.PriceHistory))
	for i, p := range m.PriceHistory {
		odds := make(map[string]float64, len(p.OutcomeOdds))
		for id, v := range p.OutcomeOdds {
			odds[id] = v
		}
		out.PriceHistory[i] = HistoryPoint{Timestamp: p.Timestamp, OutcomeOdds: odds}
	}

	return out
}
