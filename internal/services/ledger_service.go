package services

import (
	"context"
	"fmt"
	"log/slog"

	"hushbudget/internal/amqp"
	"hushbudget/internal/core"
	"hushbudget/internal/ledger"
)

// LedgerService orchestrates ledger mutations and change-event publication.
// The event publish is best effort: a mutation that persisted locally never
// fails because the broker is unavailable.
type LedgerService struct {
	store      *ledger.Store
	amqpClient *amqp.Client
	cleanup    func() error
}

func NewLedgerService(store *ledger.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// SetCleanup registers an extra cleanup step run on Close, typically the
// backing store's Close.
func (s *LedgerService) SetCleanup(fn func() error) {
	s.cleanup = fn
}

// Load replaces the in-memory collection with the persisted one.
func (s *LedgerService) Load(ctx context.Context) {
	s.store.Load(ctx)
}

// Add appends a prepared transaction, persists, and announces the change.
func (s *LedgerService) Add(ctx context.Context, t core.Transaction) error {
	if err := s.store.Add(ctx, t); err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	s.publishEvent(ctx, amqp.OpCreated, t.ID)
	return nil
}

// Remove deletes by id, persists, and announces the change. A miss is a
// silent no-op and publishes nothing.
func (s *LedgerService) Remove(ctx context.Context, id int64) error {
	before := s.store.Len()
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove transaction: %w", err)
	}
	if s.store.Len() != before {
		s.publishEvent(ctx, amqp.OpDeleted, id)
	}
	return nil
}

// All returns a snapshot of the current collection.
func (s *LedgerService) All() []core.Transaction {
	return s.store.All()
}

func (s *LedgerService) publishEvent(ctx context.Context, op string, id int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"op", op, "id", id, "error", err)
	}
}

// Close releases the AMQP connection and any registered store cleanup.
func (s *LedgerService) Close() error {
	var errs []error

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
