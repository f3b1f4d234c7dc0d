package core

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Gate normalizes and validates raw input before it enters the store. It is
// the only place new transaction ids are minted.
type Gate struct {
	mu     sync.Mutex
	lastID int64
}

func NewGate() *Gate {
	return &Gate{}
}

// Prepare turns raw form values into a fully formed transaction. Any failing
// rule yields ErrIncompleteInput; the caller gets no per-field detail.
//
// The category passes through untouched. An empty category is allowed here
// and normalized to DefaultCategory only when aggregating.
func (g *Gate) Prepare(descRaw, amountRaw, category, dateRaw string) (Transaction, error) {
	desc := strings.TrimSpace(descRaw)
	if desc == "" {
		return Transaction{}, ErrIncompleteInput
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountRaw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Transaction{}, ErrIncompleteInput
	}

	if strings.TrimSpace(dateRaw) == "" {
		return Transaction{}, ErrIncompleteInput
	}
	date, err := ParseDate(dateRaw)
	if err != nil {
		return Transaction{}, ErrIncompleteInput
	}

	return Transaction{
		ID:          g.nextID(),
		Description: desc,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}

// nextID derives an id from the current millisecond clock. Rapid successive
// calls fall back to a monotonic increment so ids stay unique.
func (g *Gate) nextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.lastID {
		id = g.lastID + 1
	}
	g.lastID = id
	return id
}
