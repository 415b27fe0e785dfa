// Package notify fans transient user-facing notifications out to registered
// sinks. Every ledger operation outcome becomes a short human-readable
// message; sinks decide how to surface it (ring buffer for the REST API,
// WebSocket broadcast for live clients).
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// Sink receives published notifications.
type Sink interface {
	// Send delivers one notification. Implementations must not block.
	Send(ctx context.Context, n domain.Notification) error
	// Name identifies the sink in logs (e.g. "ring", "websocket").
	Name() string
}

// Notifier dispatches notifications to all registered sinks. When a kind
// filter is configured only matching kinds are forwarded; an empty filter
// forwards everything.
type Notifier struct {
	sinks  []Sink
	kinds  map[domain.NotificationKind]bool
	logger *slog.Logger
}

// New creates a Notifier delivering to the given sinks. kinds limits which
// notification kinds pass; leave empty to allow all.
func New(sinks []Sink, kinds []string, logger *slog.Logger) *Notifier {
	allowed := make(map[domain.NotificationKind]bool, len(kinds))
	for _, k := range kinds {
		allowed[domain.NotificationKind(strings.TrimSpace(k))] = true
	}
	return &Notifier{
		sinks:  sinks,
		kinds:  allowed,
		logger: logger.With(slog.String("component", "notifier")),
	}
}

// Publish builds a notification from kind and a formatted message and
// dispatches it. Sink failures are logged, never propagated; a notification
// is best-effort by definition.
func (n *Notifier) Publish(ctx context.Context, kind domain.NotificationKind, format string, args ...any) {
	if len(n.kinds) > 0 && !n.kinds[kind] {
		return
	}

	note := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		CreatedAt: time.Now(),
	}

	for _, s := range n.sinks {
		if err := s.Send(ctx, note); err != nil {
			n.logger.WarnContext(ctx, "notification sink failed",
				slog.String("sink", s.Name()),
				slog.String("error", err.Error()),
			)
		}
	}
}
