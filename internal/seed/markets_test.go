package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

func TestMarketsCatalogue(t *testing.T) {
	now := time.Now()
	markets := Markets(now)
	require.Len(t, markets, 16)

	seen := make(map[string]bool, len(markets))
	byID := make(map[string]domain.Market, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}

	for _, m := range markets {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true

		assert.NotEmpty(t, m.Question, m.ID)
		assert.True(t, m.Category.Valid(), "category %q on %s", m.Category, m.ID)
		assert.GreaterOrEqual(t, len(m.Outcomes), 2, m.ID)
		assert.LessOrEqual(t, len(m.Outcomes), 5, m.ID)
		assert.Empty(t, m.PriceHistory, "history is hydrated by the store, not seeded")

		// The market total is the sum of the outcome stakes.
		assert.InDelta(t, m.OutcomeStakeSum(), m.TotalStaked, 1e-9, m.ID)

		if m.Status == domain.MarketStatusActive {
			assert.True(t, m.ExpiryTime.After(now), "%s expires in the past", m.ID)
		}
		assert.True(t, m.CreatedAt.Before(now), m.ID)

		// Parent and child references resolve within the catalogue.
		if m.ParentID != "" {
			parent, ok := byID[m.ParentID]
			require.True(t, ok, "%s references missing parent %s", m.ID, m.ParentID)
			assert.Contains(t, parent.ChildMarketIDs, m.ID)
		}
		for _, childID := range m.ChildMarketIDs {
			_, ok := byID[childID]
			assert.True(t, ok, "%s references missing child %s", m.ID, childID)
		}
	}
}

func TestMarketsOddsSumToHundred(t *testing.T) {
	for _, m := range Markets(time.Now()) {
		var sum float64
		for _, o := range m.Outcomes {
			sum += o.Odds
		}
		assert.InDelta(t, 100.0, sum, 1e-9, m.ID)
	}
}
