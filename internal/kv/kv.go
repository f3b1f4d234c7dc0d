// Package kv defines the key-addressed durable store the ledger persists
// into: named slots holding opaque text values.
package kv

import "context"

// Slot keys used by the application.
const (
	TransactionsKey = "hushbudget_tx_v1"
	ThemeKey        = "hushbudget_theme_v1"
)

// Store is a durable slot store. Reading an absent key reports ok=false with
// no error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
