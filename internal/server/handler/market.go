package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cascadeprotocol/cascade/internal/domain"
	"github.com/cascadeprotocol/cascade/internal/market"
)

// MarketStore defines the methods that the market handler requires from the
// market store. It is declared locally so the handler package does not depend
// on the concrete store implementation.
type MarketStore interface {
	Snapshot() []domain.Market
	GetByID(id string) (domain.Market, error)
	CreateMarket(p market.CreateParams, now time.Time) (domain.Market, error)
}

// AnalysisService produces a short narrative summary for a market.
type AnalysisService interface {
	Analysis(ctx context.Context, marketID string) (string, error)
}

// MarketHandler serves market-related HTTP endpoints.
type MarketHandler struct {
	store    MarketStore
	analysis AnalysisService
	logger   *slog.Logger
}

// NewMarketHandler creates a MarketHandler with the given store and logger.
func NewMarketHandler(store MarketStore, analysis AnalysisService, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		store:    store,
		analysis: analysis,
		logger:   logger,
	}
}

// listMarketsResponse wraps the list endpoint output with metadata.
type listMarketsResponse struct {
	Markets []domain.Market `json:"markets"`
	Total   int             `json:"total"`
}

// ListMarkets returns a snapshot of every market in insertion order.
// GET /api/markets
func (h *MarketHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	markets := h.store.Snapshot()
	if markets == nil {
		markets = []domain.Market{}
	}
	writeJSON(w, http.StatusOK, listMarketsResponse{
		Markets: markets,
		Total:   len(markets),
	})
}

// GetMarket returns a single market by its ID.
// GET /api/markets/{id}
func (h *MarketHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing market id")
		return
	}

	m, err := h.store.GetByID(id)
	if err != nil {
		writeDomainError(w, h.logger, err, "get market")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// createMarketRequest is the JSON body for market creation.
type createMarketRequest struct {
	Question         string   `json:"question"`
	Description      string   `json:"description"`
	Rules            string   `json:"rules"`
	ResolutionSource string   `json:"resolutionSource"`
	Outcomes         []string `json:"outcomes"`
	ExpiryTime       int64    `json:"expiryTime"` // unix milliseconds
	InitialLiquidity float64  `json:"initialLiquidity"`
	Category         string   `json:"category"`
	ParentID         string   `json:"parentId,omitempty"`
}

// CreateMarket creates a new market from a JSON body.
// POST /api/markets
func (h *MarketHandler) CreateMarket(w http.ResponseWriter, r *http.Request) {
	var req createMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	m, err := h.store.CreateMarket(market.CreateParams{
		Question:         req.Question,
		Description:      req.Description,
		Rules:            req.Rules,
		ResolutionSource: req.ResolutionSource,
		OutcomeNames:     req.Outcomes,
		ExpiryTime:       time.UnixMilli(req.ExpiryTime),
		InitialLiquidity: req.InitialLiquidity,
		Category:         domain.MarketCategory(req.Category),
		ParentID:         req.ParentID,
	}, time.Now())
	if err != nil {
		writeDomainError(w, h.logger, err, "create market")
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// GetAnalysis returns a generated narrative summary for a market.
// GET /api/markets/{id}/analysis
func (h *MarketHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing market id")
		return
	}

	text, err := h.analysis.Analysis(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err, "analyze market")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"marketId": id,
		"analysis": text,
	})
}
