package services

import (
	"context"
	"testing"

	"hushbudget/internal/core"
	"hushbudget/internal/kv/memory"
	"hushbudget/internal/ledger"
)

func newTestService() *LedgerService {
	return NewLedgerService(ledger.NewStore(memory.New()), nil)
}

func TestAddThenAllContainsRecord(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tx := core.Transaction{
		ID:          42,
		Description: "Lunch",
		Amount:      -12.5,
		Category:    core.CategoryFood,
		Date:        core.NewDate(2024, 1, 5),
	}
	if err := svc.Add(ctx, tx); err != nil {
		t.Fatalf("add: %v", err)
	}

	all := svc.All()
	if len(all) != 1 || all[0] != tx {
		t.Fatalf("expected stored record %v, got %v", tx, all)
	}
}

func TestRemoveWithoutBroker(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_ = svc.Add(ctx, core.Transaction{ID: 1, Description: "a", Amount: 1, Date: core.NewDate(2024, 1, 5)})

	if err := svc.Remove(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(svc.All()) != 0 {
		t.Fatal("record not removed")
	}

	// Miss stays silent.
	if err := svc.Remove(ctx, 1); err != nil {
		t.Fatalf("delete miss must not error: %v", err)
	}
}

func TestCloseNilComponents(t *testing.T) {
	svc := newTestService()
	if err := svc.Close(); err != nil {
		t.Fatalf("close with nil components: %v", err)
	}
}
