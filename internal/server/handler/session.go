package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// SessionService defines the ledger methods the session handler requires.
type SessionService interface {
	Connect(ctx context.Context) (domain.User, error)
	Restore(ctx context.Context) (domain.User, error)
	Disconnect(ctx context.Context) error
	CurrentUser() (domain.User, error)
}

// SessionHandler serves wallet session HTTP endpoints.
type SessionHandler struct {
	ledger SessionService
	logger *slog.Logger
}

// NewSessionHandler creates a SessionHandler with the given service and logger.
func NewSessionHandler(ledger SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		ledger: ledger,
		logger: logger,
	}
}

// Connect requests wallet accounts and opens a fresh session.
// POST /api/session/connect
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user, err := h.ledger.Connect(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err, "connect wallet")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Restore attempts to resume a previously persisted session.
// POST /api/session/restore
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	user, err := h.ledger.Restore(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err, "restore session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Disconnect closes the current session and clears persisted state.
// POST /api/session/disconnect
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.Disconnect(r.Context()); err != nil {
		writeDomainError(w, h.logger, err, "disconnect wallet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// CurrentUser returns the connected user, including balance and bets.
// GET /api/session/user
func (h *SessionHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.ledger.CurrentUser()
	if err != nil {
		writeDomainError(w, h.logger, err, "get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
