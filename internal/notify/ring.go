package notify

import (
	"context"
	"sync"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// Ring is a fixed-capacity in-memory sink keeping the most recent
// notifications for the REST API to serve. The oldest entry is evicted when
// the buffer is full.
type Ring struct {
	mu      sync.Mutex
	entries []domain.Notification
	cap     int
}

// NewRing creates a ring buffer holding up to capacity notifications.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 100
	}
	return &Ring{cap: capacity}
}

// Send appends the notification, evicting the oldest on overflow.
func (r *Ring) Send(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, n)
	if len(r.entries) > r.cap {
		r.entries = r.entries[1:]
	}
	return nil
}

// Name implements Sink.
func (r *Ring) Name() string { return "ring" }

// Recent returns up to limit notifications, newest first. limit <= 0 returns
// all buffered entries.
func (r *Ring) Recent(limit int) []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.Notification, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

var _ Sink = (*Ring)(nil)
