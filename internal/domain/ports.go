package domain

import "context"

// WalletProvider is the browser-wallet analogue: it yields the address of the
// account the user approved. Implementations return ErrUserRejected when the
// user declines the connection prompt.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) (string, error)
}

// SessionStore persists the current user session under a fixed slot so a
// reload can restore it without re-prompting the wallet. It holds at most one
// session per process.
type SessionStore interface {
	Save(ctx context.Context, user User) error
	// Load returns ErrNotFound when no session is persisted.
	Load(ctx context.Context) (User, error)
	Clear(ctx context.Context) error
}

// AuditStore records an append-only operational log of mutations. It is
// telemetry, not application state; implementations may drop entries.
type AuditStore interface {
	Log(ctx context.Context, event string, detail map[string]any) error
}

// HistoryArchiver ships a resolved market's odds history to external storage
// for offline charting. Archive returns the storage key it wrote.
type HistoryArchiver interface {
	Archive(ctx context.Context, market Market) (string, error)
}
