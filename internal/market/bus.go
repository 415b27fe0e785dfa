package market

import "github.com/cascadeprotocol/cascade/internal/domain"

// SnapshotFunc receives a full defensive copy of all markets. Callbacks run
// on the mutating goroutine while the store lock is held: they must not call
// back into the Store and should hand the snapshot off quickly (e.g. onto a
// buffered channel).
type SnapshotFunc func(markets []domain.Market)

type subscription struct {
	id uint64
	fn SnapshotFunc
}

// Subscribe registers fn and synchronously delivers the current snapshot, so
// a new subscriber never starts from stale empty state. Afterwards fn is
// invoked once per mutation, in subscription order, in the order mutations
// occur. The returned cancel func removes the subscription and is the only
// way to stop delivery; it is safe to call more than once.
func (s *Store) Subscribe(fn SnapshotFunc) (cancel func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	fn(s.snapshotLocked())
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notifyLocked delivers a fresh snapshot to every subscriber in subscription
// order. Each subscriber gets its own copy. The caller must hold s.mu.
func (s *Store) notifyLocked() {
	for _, sub := range s.subs {
		sub.fn(s.snapshotLocked())
	}
}
