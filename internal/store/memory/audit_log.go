package memory

import (
	"context"
	"sync"
	"time"
)

// AuditEntry is one recorded event.
type AuditEntry struct {
	Event     string
	Detail    map[string]any
	CreatedAt time.Time
}

// AuditLog is an in-memory audit sink. Entries are kept only for inspection
// in tests and debugging; production deployments configure PostgreSQL.
type AuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// NewAuditLog creates an empty AuditLog.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Log appends an entry.
func (a *AuditLog) Log(_ context.Context, event string, detail map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, AuditEntry{
		Event:     event,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	return nil
}

// Entries returns a copy of everything logged so far.
func (a *AuditLog) Entries() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]AuditEntry, len(a.entries))
	copy(out, a.entries)
	return out
}
