package domain

import "time"

// BetStatus tracks the bet lifecycle. A bet is created Confirmed and moves to
// Won or Lost exactly once, when its market resolves. Both are terminal.
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusConfirmed BetStatus = "confirmed"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
)

// Bet is a fixed-odds stake on a single outcome. PotentialPayout is locked in
// at placement time (amount * 100 / odds) and is unaffected by later drift.
// MarketID and OutcomeID are non-owning references resolved against the
// market store; a dangling reference resolves to not-found, never a crash.
type Bet struct {
	ID              string    `json:"id"`
	MarketID        string    `json:"marketId"`
	OutcomeID       string    `json:"outcomeId"`
	Amount          float64   `json:"amount"`
	PotentialPayout float64   `json:"potentialPayout"`
	Status          BetStatus `json:"status"`
	Claimed         bool      `json:"claimed"`
	PlacedAt        time.Time `json:"placedAt"`
}

// User is the single active session holder: a wallet address, a balance
// debited on placement and credited on win, and the bets it owns.
type User struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
	Bets    []Bet   `json:"bets"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() User {
	out := *u
	out.Bets = make([]Bet, len(u.Bets))
	copy(out.Bets, u.Bets)
	return out
}

// Bet returns the bet with the given ID, or false if the user has no such bet.
func (u *User) Bet(id string) (*Bet, bool) {
	for i := range u.Bets {
		if u.Bets[i].ID == id {
			return &u.Bets[i], true
		}
	}
	return nil, false
}

// LeaderboardEntry is a ranked row in the global leaderboard.
type LeaderboardEntry struct {
	Rank        int      `json:"rank"`
	Address     string   `json:"address"`
	TotalProfit float64  `json:"totalProfit"`
	WinRate     float64  `json:"winRate"`
	Volume      float64  `json:"volume"`
	Badges      []string `json:"badges"`
}
