package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// LeaderboardService returns the ranked list of top bettors.
type LeaderboardService interface {
	Leaderboard(ctx context.Context) []domain.LeaderboardEntry
}

// LeaderboardHandler serves the leaderboard endpoint.
type LeaderboardHandler struct {
	ledger LeaderboardService
	logger *slog.Logger
}

// NewLeaderboardHandler creates a LeaderboardHandler.
func NewLeaderboardHandler(ledger LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		ledger: ledger,
		logger: logger,
	}
}

// GetLeaderboard returns the ranked entries.
// GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries := h.ledger.Leaderboard(r.Context())
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
