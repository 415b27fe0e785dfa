// Package ledger owns the current user session: bet placement, settlement,
// and payout claims. There is exactly one active user per process; the
// session is an explicit value held by the Ledger, never a hidden global.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cascadeprotocol/cascade/internal/domain"
	"github.com/cascadeprotocol/cascade/internal/market"
	"github.com/cascadeprotocol/cascade/internal/notify"
)

// Latency simulates network/chain round-trips. Operations sleep for the
// configured duration before touching state and always run to completion:
// a started operation is never cancelled mid-way, so failures stay pure
// business errors. Zero values disable the delays (tests).
type Latency struct {
	Read  time.Duration
	Write time.Duration
}

// Deps bundles the collaborators a Ledger needs. Audit and Archiver are
// optional; a nil Notifier disables notifications.
type Deps struct {
	Wallet         domain.WalletProvider
	Sessions       domain.SessionStore
	Audit          domain.AuditStore
	Archiver       domain.HistoryArchiver
	Notifier       *notify.Notifier
	Logger         *slog.Logger
	Latency        Latency
	InitialBalance float64
}

// Ledger records stakes, computes fixed-odds payouts, and enforces settlement
// correctness against the market store.
type Ledger struct {
	mu       sync.Mutex
	user     *domain.User
	store    *market.Store
	wallet   domain.WalletProvider
	sessions domain.SessionStore
	audit    domain.AuditStore
	archiver domain.HistoryArchiver
	notifier *notify.Notifier
	logger   *slog.Logger
	latency  Latency
	balance  float64
	rng      *rand.Rand
}

// New creates a Ledger bound to the given market store.
func New(store *market.Store, deps Deps) *Ledger {
	return &Ledger{
		store:    store,
		wallet:   deps.Wallet,
		sessions: deps.Sessions,
		audit:    deps.Audit,
		archiver: deps.Archiver,
		notifier: deps.Notifier,
		logger:   deps.Logger.With(slog.String("component", "ledger")),
		latency:  deps.Latency,
		balance:  deps.InitialBalance,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Connect prompts the wallet provider for an account and opens a fresh
// session with the configured starting balance. The session is persisted so a
// later Restore can skip the prompt.
func (l *Ledger) Connect(ctx context.Context) (domain.User, error) {
	l.sleep(l.latency.Write)

	if l.wallet == nil {
		err := fmt.Errorf("ledger: no wallet provider: %w", domain.ErrNotFound)
		l.notifyErr(ctx, err)
		return domain.User{}, err
	}

	address, err := l.wallet.RequestAccounts(ctx)
	if err != nil {
		err = fmt.Errorf("ledger: connect wallet: %w", err)
		l.notifyErr(ctx, err)
		return domain.User{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.user = &domain.User{
		Address: address,
		Balance: l.balance,
		Bets:    []domain.Bet{},
	}
	l.persistLocked(ctx)

	l.logger.InfoContext(ctx, "wallet connected", slog.String("address", address))
	l.notify(ctx, domain.NotifySuccess, "Wallet connected: %s", shortAddress(address))
	return l.user.Clone(), nil
}

// Restore loads a previously persisted session without prompting the wallet.
// It returns domain.ErrNotFound when no session is stored.
func (l *Ledger) Restore(ctx context.Context) (domain.User, error) {
	user, err := l.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("ledger: restore session: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.user = &user
	l.logger.InfoContext(ctx, "session restored", slog.String("address", user.Address))
	return user.Clone(), nil
}

// Disconnect closes the session and clears the persisted copy.
func (l *Ledger) Disconnect(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.sessions.Clear(ctx); err != nil {
		l.logger.WarnContext(ctx, "clear session failed", slog.String("error", err.Error()))
	}
	l.user = nil
	l.notify(ctx, domain.NotifyInfo, "Wallet disconnected")
	return nil
}

// CurrentUser returns a copy of the active session, or domain.ErrNotConnected.
func (l *Ledger) CurrentUser() (domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.user == nil {
		return domain.User{}, domain.ErrNotConnected
	}
	return l.user.Clone(), nil
}

// PlaceBet stakes amount on an outcome at the outcome's current odds. The
// payout multiplier 100/odds is locked in at placement so later drift cannot
// change it. Balance debit, bet creation, and market stake increments apply
// as one step: any failed check leaves every piece untouched.
func (l *Ledger) PlaceBet(ctx context.Context, marketID, outcomeID string, amount float64) (domain.Bet, error) {
	l.sleep(l.latency.Write)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.user == nil {
		err := fmt.Errorf("ledger: place bet: %w", domain.ErrNotConnected)
		l.notifyErr(ctx, err)
		return domain.Bet{}, err
	}
	if amount > l.user.Balance {
		err := fmt.Errorf("ledger: stake %.2f exceeds balance %.2f: %w",
			amount, l.user.Balance, domain.ErrInsufficientBalance)
		l.notifyErr(ctx, err)
		return domain.Bet{}, err
	}

	odds, err := l.store.ApplyBet(marketID, outcomeID, amount)
	if err != nil {
		l.notifyErr(ctx, err)
		return domain.Bet{}, err
	}

	bet := domain.Bet{
		ID:              "bet-" + uuid.NewString(),
		MarketID:        marketID,
		OutcomeID:       outcomeID,
		Amount:          amount,
		PotentialPayout: amount * (100 / odds),
		Status:          domain.BetStatusConfirmed,
		PlacedAt:        time.Now(),
	}

	l.user.Balance -= amount
	l.user.Bets = append(l.user.Bets, bet)
	l.persistLocked(ctx)
	l.auditLog(ctx, "bet_placed", map[string]any{
		"bet_id":     bet.ID,
		"market_id":  marketID,
		"outcome_id": outcomeID,
		"amount":     amount,
		"payout":     bet.PotentialPayout,
	})

	l.logger.InfoContext(ctx, "bet placed",
		slog.String("bet_id", bet.ID),
		slog.String("market_id", marketID),
		slog.Float64("amount", amount),
		slog.Float64("odds", odds),
	)
	l.notify(ctx, domain.NotifySuccess, "Bet placed: %.2f at %.0f%% odds", amount, odds)
	return bet, nil
}

// ResolveMarket declares the winning outcome and distributes payouts in one
// observable unit: the market flips to Resolved, the session's bets on it
// move to Won or Lost, and every newly Won unclaimed bet is auto-claimed and
// credited, all before any snapshot reaches a subscriber. It returns the
// total credited. A failed lookup changes nothing.
func (l *Ledger) ResolveMarket(ctx context.Context, marketID, winningOutcomeID string) (float64, error) {
	l.sleep(l.latency.Write)

	l.mu.Lock()
	defer l.mu.Unlock()

	var distributed float64
	resolved, err := l.store.Resolve(marketID, winningOutcomeID, func(domain.Market) {
		distributed = l.settleLocked(marketID, winningOutcomeID)
	})
	if err != nil {
		l.notifyErr(ctx, err)
		return 0, err
	}

	if l.user != nil {
		l.persistLocked(ctx)
	}
	l.auditLog(ctx, "market_resolved", map[string]any{
		"market_id":          marketID,
		"winning_outcome_id": winningOutcomeID,
		"distributed":        distributed,
	})
	l.archiveHistory(ctx, resolved)

	l.notify(ctx, domain.NotifySuccess, "Market resolved, %.2f distributed", distributed)
	return distributed, nil
}

// settleLocked applies the Confirmed -> Won/Lost transition for the session's
// bets on the market and auto-claims the winners. Returns the total credited.
// The caller holds l.mu and the store's mutation lock.
func (l *Ledger) settleLocked(marketID, winningOutcomeID string) float64 {
	if l.user == nil {
		return 0
	}

	var winnings float64
	for i := range l.user.Bets {
		bet := &l.user.Bets[i]
		if bet.MarketID != marketID {
			continue
		}
		if bet.OutcomeID == winningOutcomeID {
			bet.Status = domain.BetStatusWon
			if !bet.Claimed {
				bet.Claimed = true
				winnings += bet.PotentialPayout
			}
		} else {
			bet.Status = domain.BetStatusLost
		}
	}

	l.user.Balance += winnings
	return winnings
}

// ClaimWinnings credits a Won bet that missed auto-distribution (e.g. the
// user was disconnected at resolution time). Claiming is a one-way latch.
func (l *Ledger) ClaimWinnings(ctx context.Context, betID string) (float64, error) {
	l.sleep(l.latency.Write)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.user == nil {
		err := fmt.Errorf("ledger: claim winnings: %w", domain.ErrNotConnected)
		l.notifyErr(ctx, err)
		return 0, err
	}
	bet, ok := l.user.Bet(betID)
	if !ok {
		err := fmt.Errorf("ledger: bet %q: %w", betID, domain.ErrNotFound)
		l.notifyErr(ctx, err)
		return 0, err
	}
	if bet.Status != domain.BetStatusWon {
		err := fmt.Errorf("ledger: bet %q is %s, not won: %w", betID, bet.Status, domain.ErrInvalidState)
		l.notifyErr(ctx, err)
		return 0, err
	}
	if bet.Claimed {
		err := fmt.Errorf("ledger: bet %q: %w", betID, domain.ErrAlreadyClaimed)
		l.notifyErr(ctx, err)
		return 0, err
	}

	bet.Claimed = true
	l.user.Balance += bet.PotentialPayout
	l.persistLocked(ctx)
	l.auditLog(ctx, "winnings_claimed", map[string]any{
		"bet_id": betID,
		"payout": bet.PotentialPayout,
	})

	l.notify(ctx, domain.NotifySuccess, "Winnings claimed: %.2f", bet.PotentialPayout)
	return bet.PotentialPayout, nil
}

// persistLocked saves the session best-effort; the in-memory session stays
// authoritative when the store is unavailable. The caller holds l.mu.
func (l *Ledger) persistLocked(ctx context.Context) {
	if l.user == nil {
		return
	}
	if err := l.sessions.Save(ctx, l.user.Clone()); err != nil {
		l.logger.WarnContext(ctx, "persist session failed",
			slog.String("address", l.user.Address),
			slog.String("error", err.Error()),
		)
	}
}

func (l *Ledger) auditLog(ctx context.Context, event string, detail map[string]any) {
	if l.audit == nil {
		return
	}
	if err := l.audit.Log(ctx, event, detail); err != nil {
		l.logger.WarnContext(ctx, "audit log failed",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
	}
}

func (l *Ledger) archiveHistory(ctx context.Context, m domain.Market) {
	if l.archiver == nil {
		return
	}
	key, err := l.archiver.Archive(ctx, m)
	if err != nil {
		l.logger.WarnContext(ctx, "archive history failed",
			slog.String("market_id", m.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	l.logger.InfoContext(ctx, "history archived",
		slog.String("market_id", m.ID),
		slog.String("key", key),
	)
}

func (l *Ledger) notify(ctx context.Context, kind domain.NotificationKind, format string, args ...any) {
	if l.notifier == nil {
		return
	}
	l.notifier.Publish(ctx, kind, format, args...)
}

// notifyErr surfaces a failure as a transient error notification using the
// sentinel's message rather than the full wrapped chain.
func (l *Ledger) notifyErr(ctx context.Context, err error) {
	if l.notifier == nil {
		return
	}
	l.notifier.Publish(ctx, domain.NotifyError, "%s", userMessage(err))
}

// userMessage maps an error to the short human-readable text shown to the
// user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		return "Connect your wallet first"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "Insufficient balance"
	case errors.Is(err, domain.ErrNotFound):
		return "Market, outcome or bet not found"
	case errors.Is(err, domain.ErrInvalidState):
		return "Operation not allowed in the current state"
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return "Winnings already claimed"
	case errors.Is(err, domain.ErrUserRejected):
		return "Connection rejected"
	default:
		return "Something went wrong, please retry"
	}
}

func (l *Ledger) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func shortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
