// Package ledger owns the authoritative transaction collection for the
// session and keeps it durable through the slot store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hushbudget/internal/codec"
	"hushbudget/internal/core"
	"hushbudget/internal/kv"
)

// ErrDuplicateID rejects an Add whose id collides with a stored record.
var ErrDuplicateID = errors.New("duplicate transaction id")

// Store holds the in-memory collection and is its only mutator. Every
// mutation persists the full collection synchronously before returning.
type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	items     []core.Transaction
	onCorrupt func(error)
}

// Option configures a Store.
type Option func(*Store)

// WithCorruptionHook observes absorbed persistence corruption. Load behavior
// is unchanged: corrupt data still becomes an empty collection.
func WithCorruptionHook(hook func(error)) Option {
	return func(s *Store) { s.onCorrupt = hook }
}

func NewStore(kvs kv.Store, opts ...Option) *Store {
	s := &Store{kv: kvs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the persisted one. Missing, empty, or
// malformed persisted data leaves the collection empty; nothing is surfaced
// to the caller. Unreadable storage is treated the same way.
func (s *Store) Load(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, kv.TransactionsKey)
	if err != nil {
		if s.onCorrupt != nil {
			s.onCorrupt(fmt.Errorf("read persisted transactions: %w", err))
		}
		raw, ok = "", false
	}

	var items []core.Transaction
	if ok {
		items = codec.DecodePersisted(raw, s.onCorrupt)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	slog.InfoContext(ctx, "Ledger loaded", "transactions", len(items))
}

// Add appends a validated record and persists before returning. The record's
// id must not collide with any stored id.
func (s *Store) Add(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ID == t.ID {
			return ErrDuplicateID
		}
	}

	s.items = append(s.items, t)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"amount", t.Amount,
		"category", t.Category,
		"date", t.Date.String())
	return nil
}

// Remove deletes the record with the given id and persists. A miss is a
// silent no-op, not an error.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.items {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.DebugContext(ctx, "Delete miss ignored", "id", id)
		return nil
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = append(s.items[:idx], append([]core.Transaction{removed}, s.items[idx:]...)...)
		return err
	}

	slog.InfoContext(ctx, "Transaction removed", "id", id)
	return nil
}

// All returns a snapshot copy of the collection. Callers cannot affect the
// store through the returned slice.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := codec.EncodePersisted(s.items)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.kv.Set(ctx, kv.TransactionsKey, raw); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}
