package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// NotificationFeed exposes the most recent in-process notifications.
type NotificationFeed interface {
	Recent(limit int) []domain.Notification
}

// NotificationHandler serves the notification feed endpoint.
type NotificationHandler struct {
	feed   NotificationFeed
	logger *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(feed NotificationFeed, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		feed:   feed,
		logger: logger,
	}
}

// ListNotifications returns recent notifications, newest first.
// GET /api/notifications?limit=20
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items := h.feed.Recent(limit)
	if items == nil {
		items = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": items})
}
