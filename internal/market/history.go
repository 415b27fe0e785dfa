package market

import (
	"math/rand"
	"time"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// historySeedSteps is the number of intervals a freshly seeded history spans
// between creation time and now.
const historySeedSteps = 20

// generateHistory fabricates a plausible odds time series for a market that
// has no recorded history: starting from the current odds at createdAt, each
// step wiggles every outcome by up to ±5 points, clamped to [1,99]. The
// per-outcome wiggles are independent, so the series does not stay on the
// 100% simplex; it only needs to look alive on a chart.
func generateHistory(outcomes []domain.Outcome, createdAt, now time.Time, rng *rand.Rand) []domain.HistoryPoint {
	interval := now.Sub(createdAt) / historySeedSteps

	current := make(map[string]float64, len(outcomes))
	for _, o := range outcomes {
		current[o.ID] = o.Odds
	}

	points := make([]domain.HistoryPoint, 0, historySeedSteps+1)
	for i := 0; i <= historySeedSteps; i++ {
		if i > 0 {
			for id, v := range current {
				current[id] = clamp(v+rng.Float64()*10-5, 1, 99)
			}
		}

		odds := make(map[string]float64, len(current))
		for id, v := range current {
			odds[id] = v
		}
		points = append(points, domain.HistoryPoint{
			Timestamp:   createdAt.Add(time.Duration(i) * interval),
			OutcomeOdds: odds,
		})
	}
	return points
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
