package ledger

import (
	"context"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// leaderboard is the demo ranking; there is no cross-user accounting in a
// single-session process, so the board is a fixture.
var leaderboard = []domain.LeaderboardEntry{
	{Rank: 1, Address: "0x88A...2B19", TotalProfit: 45200, WinRate: 78, Volume: 120000, Badges: []string{"Whale", "Oracle"}},
	{Rank: 2, Address: "0x32C...9A00", TotalProfit: 32100, WinRate: 64, Volume: 89000, Badges: []string{"Early Adopter"}},
	{Rank: 3, Address: "0x11B...CC44", TotalProfit: 28500, WinRate: 55, Volume: 150000, Badges: []string{"Volume King"}},
	{Rank: 4, Address: "0x77D...EE22", TotalProfit: 19000, WinRate: 82, Volume: 45000, Badges: []string{"Sharpshooter"}},
	{Rank: 5, Address: "0x99F...11AA", TotalProfit: 12400, WinRate: 49, Volume: 90000, Badges: []string{}},
}

// Leaderboard returns the ranked entries behind the usual simulated read
// latency.
func (l *Ledger) Leaderboard(_ context.Context) []domain.LeaderboardEntry {
	l.sleep(l.latency.Read)

	out := make([]domain.LeaderboardEntry, len(leaderboard))
	copy(out, leaderboard)
	return out
}
