package cart

import (
	"context"
	"log/slog"
	"sync"
)

// Subscriber is called synchronously after every committed mutation with the
// freshly computed totals.
type Subscriber func(Totals)

// Store owns the authoritative item list and derived totals for one session.
// Every successful mutation recomputes totals, persists the item sequence and
// notifies subscribers; persistence failures are logged and swallowed so the
// in-memory cart is never lost over a flaky storage backend.
type Store struct {
	sessionID string
	storage   Storage

	mu     sync.Mutex
	items  []Item
	totals Totals
	subs   []Subscriber
}

func NewStore(sessionID string, storage Storage) *Store {
	return &Store{
		sessionID: sessionID,
		storage:   storage,
		totals:    ZeroTotals(),
	}
}

// Load restores the item sequence from storage. A missing or corrupt entry
// yields an empty cart; storage trouble is never surfaced to the caller.
func (s *Store) Load(ctx context.Context) {
	items, err := s.storage.LoadItems(ctx, s.sessionID)
	if err != nil {
		if err != ErrNotFound {
			slog.WarnContext(ctx, "cart load failed, starting empty",
				slog.String("session_id", s.sessionID), slog.Any("error", err))
		}
		items = nil
	}
	s.mu.Lock()
	s.items = items
	s.totals = computeTotals(s.items)
	s.mu.Unlock()
}

func (s *Store) SessionID() string {
	return s.sessionID
}

// Subscribe registers a callback for committed totals. The callback runs
// under the store lock, so it must not call back into the store.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Items returns a copy of the current item sequence.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// AddItem merges the item into the cart: an existing entry for the same
// product has its quantity incremented by one, otherwise a new entry is
// appended with quantity one.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(item.ProductID); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	s.commit(ctx)
	return nil
}

// DecrementQuantity lowers the matching entry's quantity by one. An entry
// that would reach zero is removed entirely, keeping the quantity >= 1
// invariant.
func (s *Store) DecrementQuantity(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return ErrItemNotFound
	}
	s.items[idx].Quantity--
	if s.items[idx].Quantity == 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	}
	s.commit(ctx)
	return nil
}

// RemoveItem drops the matching entry regardless of its quantity.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return ErrItemNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.commit(ctx)
	return nil
}

// Reset empties the cart and clears persisted storage. Callers are the
// checkout success path and an explicit user action, nothing else.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.totals = ZeroTotals()
	if err := s.storage.ClearItems(ctx, s.sessionID); err != nil {
		slog.WarnContext(ctx, "cart storage clear failed",
			slog.String("session_id", s.sessionID), slog.Any("error", err))
	}
	s.notify()
	return nil
}

// UserEmail reads the session's stored email, pre-filled into the checkout
// form. Absence is not an error, it just returns "".
func (s *Store) UserEmail(ctx context.Context) string {
	email, err := s.storage.UserEmail(ctx, s.sessionID)
	if err != nil && err != ErrNotFound {
		slog.WarnContext(ctx, "user email read failed",
			slog.String("session_id", s.sessionID), slog.Any("error", err))
	}
	return email
}

// commit recomputes totals, persists and notifies. Caller holds s.mu.
func (s *Store) commit(ctx context.Context) {
	s.totals = computeTotals(s.items)
	if err := s.storage.SaveItems(ctx, s.sessionID, s.items); err != nil {
		slog.WarnContext(ctx, "cart persist failed",
			slog.String("session_id", s.sessionID), slog.Any("error", err))
	}
	s.notify()
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn(s.totals)
	}
}

func (s *Store) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
