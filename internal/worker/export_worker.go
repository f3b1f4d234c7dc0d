// Package worker maintains an on-disk CSV snapshot of the ledger, refreshed
// from change events and on a timer.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hushbudget/internal/amqp"
	"hushbudget/internal/codec"
	"hushbudget/internal/core"
	"hushbudget/internal/kv"
)

// ExportWorker rebuilds the export artifact from the persisted collection.
// It reads through the slot store rather than an in-process ledger so it can
// run as a separate binary beside the server.
type ExportWorker struct {
	kv   kv.Store
	path string
}

func NewExportWorker(store kv.Store, path string) *ExportWorker {
	return &ExportWorker{kv: store, path: path}
}

// HandleLedgerEvent refreshes the snapshot after any mutation; the event
// payload carries no state the persisted collection doesn't.
func (w *ExportWorker) HandleLedgerEvent(msg *amqp.LedgerEventMessage) error {
	slog.Info("Processing ledger event", "op", msg.Op, "id", msg.ID)
	return w.Refresh(context.Background())
}

// Refresh rewrites the CSV snapshot. An empty ledger produces no file; an
// existing stale snapshot is removed instead.
func (w *ExportWorker) Refresh(ctx context.Context) error {
	raw, ok, err := w.kv.Get(ctx, kv.TransactionsKey)
	if err != nil {
		return fmt.Errorf("read persisted transactions: %w", err)
	}

	var records []core.Transaction
	if ok {
		records = codec.DecodePersisted(raw, func(err error) {
			slog.WarnContext(ctx, "Absorbed persisted data corruption", "error", err)
		})
	}

	out, err := codec.EncodeExport(records)
	if errors.Is(err, codec.ErrEmptyExport) {
		if removeErr := os.Remove(w.path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("remove stale snapshot: %w", removeErr)
		}
		slog.InfoContext(ctx, "Ledger empty, no snapshot produced", "path", w.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.WriteFile(w.path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Export snapshot refreshed", "path", w.path, "transactions", len(records))
	return nil
}
