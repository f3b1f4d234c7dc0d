package core

import "testing"

func TestGatePrepare(t *testing.T) {
	g := NewGate()
	tx, err := g.Prepare("  Coffee  ", "-4.50", CategoryFood, "2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Description != "Coffee" {
		t.Fatalf("description not trimmed: %q", tx.Description)
	}
	if tx.Amount != -4.5 {
		t.Fatalf("unexpected amount %v", tx.Amount)
	}
	if tx.Category != CategoryFood {
		t.Fatalf("unexpected category %q", tx.Category)
	}
	if tx.Date.String() != "2024-01-05" {
		t.Fatalf("unexpected date %s", tx.Date)
	}
	if tx.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestGatePrepareRejects(t *testing.T) {
	g := NewGate()
	cases := []struct {
		name                       string
		desc, amount, cat, dateRaw string
	}{
		{"blank description", "   ", "10", CategoryFood, "2024-01-05"},
		{"empty amount", "a", "", CategoryFood, "2024-01-05"},
		{"non-numeric amount", "a", "abc", CategoryFood, "2024-01-05"},
		{"nan amount", "a", "NaN", CategoryFood, "2024-01-05"},
		{"infinite amount", "a", "Inf", CategoryFood, "2024-01-05"},
		{"empty date", "a", "10", CategoryFood, ""},
		{"malformed date", "a", "10", CategoryFood, "yesterday"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Prepare(tc.desc, tc.amount, tc.cat, tc.dateRaw)
			if err != ErrIncompleteInput {
				t.Fatalf("expected ErrIncompleteInput, got %v", err)
			}
		})
	}
}

func TestGatePrepareAllowsEmptyCategoryAndZeroAmount(t *testing.T) {
	g := NewGate()
	tx, err := g.Prepare("refund", "0", "", "2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Category != "" {
		t.Fatalf("category must pass through unchanged, got %q", tx.Category)
	}
	if tx.Amount != 0 {
		t.Fatalf("zero amount is permitted, got %v", tx.Amount)
	}
}

func TestGateIDsUniqueAndIncreasing(t *testing.T) {
	g := NewGate()
	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 1000; i++ {
		tx, err := g.Prepare("x", "1", "", "2024-01-05")
		if err != nil {
			t.Fatalf("prepare %d: %v", i, err)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate id %d at call %d", tx.ID, i)
		}
		if tx.ID <= last {
			t.Fatalf("id %d not increasing after %d", tx.ID, last)
		}
		seen[tx.ID] = true
		last = tx.ID
	}
}
