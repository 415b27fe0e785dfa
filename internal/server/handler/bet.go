package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// BetService defines the ledger methods the bet handler requires.
type BetService interface {
	PlaceBet(ctx context.Context, marketID, outcomeID string, amount float64) (domain.Bet, error)
	ClaimWinnings(ctx context.Context, betID string) (float64, error)
	ResolveMarket(ctx context.Context, marketID, winningOutcomeID string) (float64, error)
	CurrentUser() (domain.User, error)
}

// BetHandler serves betting and settlement HTTP endpoints.
type BetHandler struct {
	ledger BetService
	logger *slog.Logger
}

// NewBetHandler creates a BetHandler with the given ledger service and logger.
func NewBetHandler(ledger BetService, logger *slog.Logger) *BetHandler {
	return &BetHandler{
		ledger: ledger,
		logger: logger,
	}
}

// placeBetRequest is the JSON body for bet placement.
type placeBetRequest struct {
	MarketID  string  `json:"marketId"`
	OutcomeID string  `json:"outcomeId"`
	Amount    float64 `json:"amount"`
}

// PlaceBet places a bet for the connected user.
// POST /api/bets
func (h *BetHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MarketID == "" || req.OutcomeID == "" {
		writeError(w, http.StatusBadRequest, "marketId and outcomeId are required")
		return
	}

	bet, err := h.ledger.PlaceBet(r.Context(), req.MarketID, req.OutcomeID, req.Amount)
	if err != nil {
		writeDomainError(w, h.logger, err, "place bet")
		return
	}

	writeJSON(w, http.StatusCreated, bet)
}

// ListBets returns the connected user's bets.
// GET /api/bets
func (h *BetHandler) ListBets(w http.ResponseWriter, r *http.Request) {
	user, err := h.ledger.CurrentUser()
	if err != nil {
		writeDomainError(w, h.logger, err, "list bets")
		return
	}

	bets := user.Bets
	if bets == nil {
		bets = []domain.Bet{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bets": bets})
}

// ClaimWinnings marks a won bet as claimed and credits the payout.
// POST /api/bets/{id}/claim
func (h *BetHandler) ClaimWinnings(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bet id")
		return
	}

	payout, err := h.ledger.ClaimWinnings(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err, "claim winnings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"betId":  id,
		"payout": payout,
	})
}

// resolveRequest is the JSON body for market resolution.
type resolveRequest struct {
	WinningOutcomeID string `json:"winningOutcomeId"`
}

// ResolveMarket resolves a market and settles every bet on it.
// POST /api/markets/{id}/resolve
func (h *BetHandler) ResolveMarket(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing market id")
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.WinningOutcomeID == "" {
		writeError(w, http.StatusBadRequest, "winningOutcomeId is required")
		return
	}

	distributed, err := h.ledger.ResolveMarket(r.Context(), id, req.WinningOutcomeID)
	if err != nil {
		writeDomainError(w, h.logger, err, "resolve market")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"marketId":         id,
		"winningOutcomeId": req.WinningOutcomeID,
		"distributed":      distributed,
	})
}
