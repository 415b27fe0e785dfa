// Package seed provides the demo market catalogue the service boots with.
// The catalogue is regenerated on every start; nothing here is persisted.
package seed

import (
	"time"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// Markets returns the seed catalogue with creation times set relative to now.
// Expiry times are also relative so a fresh boot never starts with every
// market already expired. Odds history is left empty; the store hydrates it
// on bootstrap.
func Markets(now time.Time) []domain.Market {
	return []domain.Market{
		// ── Crypto ──
		{
			ID:               "m-1",
			Question:         "Will Bitcoin exceed $150k by end of year?",
			Description:      "Resolves to \"Yes\" if the price of Bitcoin (BTC) on CoinGecko exceeds $150,000.00 USD at any point before December 31, 11:59 PM UTC.",
			Rules:            "Price data will be sourced from the daily high on CoinGecko. If CoinGecko is unavailable, Binance spot price will be used.",
			ResolutionSource: "CoinGecko / Binance",
			Category:         domain.CategoryCrypto,
			Outcomes: []domain.Outcome{
				{ID: "o-1-a", Name: "Yes", Odds: 65, TotalStaked: 150000},
				{ID: "o-1-b", Name: "No", Odds: 35, TotalStaked: 80000},
			},
			TotalStaked:    230000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(120 * 24 * time.Hour),
			ChildMarketIDs: []string{"m-2", "m-3"},
			CreatedAt:      now.Add(-10000000 * time.Millisecond),
		},
		{
			ID:          "m-2",
			ParentID:    "m-1",
			Question:    "Will the SEC approve a new spot crypto ETF this quarter?",
			Description: "Predicts regulatory approval for any new spot crypto ETF (excluding BTC/ETH which are already approved).",
			Rules:       "Resolves based on official SEC press releases or filings.",
			Category:    domain.CategoryCrypto,
			Outcomes: []domain.Outcome{
				{ID: "o-2-a", Name: "Approved", Odds: 40, TotalStaked: 45000},
				{ID: "o-2-b", Name: "Denied/Delayed", Odds: 60, TotalStaked: 67000},
			},
			TotalStaked:    112000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(60 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-5000000 * time.Millisecond),
		},
		{
			ID:          "m-10",
			Question:    "Will Ethereum flippen Bitcoin market cap next year?",
			Description: "Resolves to Yes if Ethereum market capitalization exceeds Bitcoin market capitalization for 24 continuous hours.",
			Category:    domain.CategoryCrypto,
			Outcomes: []domain.Outcome{
				{ID: "o-10-a", Name: "Yes", Odds: 15, TotalStaked: 25000},
				{ID: "o-10-b", Name: "No", Odds: 85, TotalStaked: 140000},
			},
			TotalStaked:    165000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(365 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-8000000 * time.Millisecond),
		},
		{
			ID:       "m-11",
			Question: "Will Solana downtime exceed 48 hours total this year?",
			Category: domain.CategoryCrypto,
			Outcomes: []domain.Outcome{
				{ID: "o-11-a", Name: "Yes", Odds: 30, TotalStaked: 12000},
				{ID: "o-11-b", Name: "No", Odds: 70, TotalStaked: 28000},
			},
			TotalStaked:    40000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(120 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-3000000 * time.Millisecond),
		},

		// ── Economics ──
		{
			ID:          "m-3",
			ParentID:    "m-1",
			Question:    "Will US inflation (CPI) drop below 2.5% this year?",
			Description: "Tracks the Consumer Price Index (CPI) year-over-year change for any month this year.",
			Category:    domain.CategoryEconomics,
			Outcomes: []domain.Outcome{
				{ID: "o-3-a", Name: "Yes", Odds: 25, TotalStaked: 12000},
				{ID: "o-3-b", Name: "No", Odds: 75, TotalStaked: 36000},
			},
			TotalStaked:    48000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(120 * 24 * time.Hour),
			ChildMarketIDs: []string{"m-4"},
			CreatedAt:      now.Add(-4000000 * time.Millisecond),
		},
		{
			ID:       "m-4",
			ParentID: "m-3",
			Question: "Will the Fed cut rates at the September meeting?",
			Category: domain.CategoryEconomics,
			Outcomes: []domain.Outcome{
				{ID: "o-4-a", Name: "Cut > 25bps", Odds: 15, TotalStaked: 5000},
				{ID: "o-4-b", Name: "Cut 25bps", Odds: 50, TotalStaked: 15000},
				{ID: "o-4-c", Name: "No Cut", Odds: 35, TotalStaked: 10000},
			},
			TotalStaked:    30000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(21 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-2000000 * time.Millisecond),
		},
		{
			ID:       "m-12",
			Question: "Will gold reach $3,000/oz before year end?",
			Category: domain.CategoryEconomics,
			Outcomes: []domain.Outcome{
				{ID: "o-12-a", Name: "Yes", Odds: 55, TotalStaked: 85000},
				{ID: "o-12-b", Name: "No", Odds: 45, TotalStaked: 70000},
			},
			TotalStaked:    155000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(120 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-6000000 * time.Millisecond),
		},

		// ── Politics ──
		{
			ID:          "m-5",
			Question:    "Who will win the next US presidential election?",
			Description: "The winner of the next US presidential election as determined by the Electoral College.",
			Category:    domain.CategoryPolitics,
			Outcomes: []domain.Outcome{
				{ID: "o-5-a", Name: "Democrat", Odds: 48, TotalStaked: 500000},
				{ID: "o-5-b", Name: "Republican", Odds: 52, TotalStaked: 540000},
			},
			TotalStaked:    1040000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(90 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-20000000 * time.Millisecond),
		},
		{
			ID:       "m-13",
			Question: "Will the UK rejoin the EU Single Market before 2030?",
			Category: domain.CategoryPolitics,
			Outcomes: []domain.Outcome{
				{ID: "o-13-a", Name: "Yes", Odds: 12, TotalStaked: 5000},
				{ID: "o-13-b", Name: "No", Odds: 88, TotalStaked: 38000},
			},
			TotalStaked:    43000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(4 * 365 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-12000000 * time.Millisecond),
		},

		// ── Tech ──
		{
			ID:          "m-6",
			Question:    "Will OpenAI release its next frontier model before July?",
			Description: "Official release of a model explicitly positioned as the successor to the current flagship.",
			Category:    domain.CategoryTech,
			Outcomes: []domain.Outcome{
				{ID: "o-6-a", Name: "Yes", Odds: 22, TotalStaked: 89000},
				{ID: "o-6-b", Name: "No", Odds: 78, TotalStaked: 310000},
			},
			TotalStaked:    399000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(60 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-9000000 * time.Millisecond),
		},
		{
			ID:       "m-7",
			Question: "Will Apple acquire a major EV manufacturer this year?",
			Category: domain.CategoryTech,
			Outcomes: []domain.Outcome{
				{ID: "o-7-a", Name: "Rivian", Odds: 15, TotalStaked: 20000},
				{ID: "o-7-b", Name: "Lucid", Odds: 8, TotalStaked: 10000},
				{ID: "o-7-c", Name: "None/Other", Odds: 77, TotalStaked: 95000},
			},
			TotalStaked:    125000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(120 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-4000000 * time.Millisecond),
		},
		{
			ID:       "m-14",
			Question: "Will Starship successfully orbit & return on its next launch?",
			Category: domain.CategoryTech,
			Outcomes: []domain.Outcome{
				{ID: "o-14-a", Name: "Success", Odds: 60, TotalStaked: 45000},
				{ID: "o-14-b", Name: "Failure", Odds: 40, TotalStaked: 30000},
			},
			TotalStaked:    75000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(30 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-1000000 * time.Millisecond),
		},

		// ── Sports ──
		{
			ID:       "m-8",
			Question: "Who will win this season's UEFA Champions League?",
			Category: domain.CategorySports,
			Outcomes: []domain.Outcome{
				{ID: "o-8-a", Name: "Man City", Odds: 35, TotalStaked: 60000},
				{ID: "o-8-b", Name: "Real Madrid", Odds: 30, TotalStaked: 55000},
				{ID: "o-8-c", Name: "Arsenal", Odds: 15, TotalStaked: 25000},
				{ID: "o-8-d", Name: "Bayern", Odds: 20, TotalStaked: 35000},
			},
			TotalStaked:    175000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(200 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-15000000 * time.Millisecond),
		},
		{
			ID:       "m-9",
			Question: "Will LeBron James retire after this season?",
			Category: domain.CategorySports,
			Outcomes: []domain.Outcome{
				{ID: "o-9-a", Name: "Yes", Odds: 10, TotalStaked: 8000},
				{ID: "o-9-b", Name: "No", Odds: 90, TotalStaked: 72000},
			},
			TotalStaked:    80000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(60 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-2000000 * time.Millisecond),
		},
		{
			ID:       "m-15",
			Question: "Max Verstappen to win every remaining race this season?",
			Category: domain.CategorySports,
			Outcomes: []domain.Outcome{
				{ID: "o-15-a", Name: "Yes", Odds: 5, TotalStaked: 2000},
				{ID: "o-15-b", Name: "No", Odds: 95, TotalStaked: 35000},
			},
			TotalStaked:    37000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(100 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-500000 * time.Millisecond),
		},

		// ── Other ──
		{
			ID:       "m-16",
			Question: "Will Taylor Swift announce a new album this quarter?",
			Category: domain.CategoryOther,
			Outcomes: []domain.Outcome{
				{ID: "o-16-a", Name: "Yes", Odds: 80, TotalStaked: 120000},
				{ID: "o-16-b", Name: "No", Odds: 20, TotalStaked: 30000},
			},
			TotalStaked:    150000,
			Status:         domain.MarketStatusActive,
			ExpiryTime:     now.Add(45 * 24 * time.Hour),
			ChildMarketIDs: []string{},
			CreatedAt:      now.Add(-3000000 * time.Millisecond),
		},
	}
}
