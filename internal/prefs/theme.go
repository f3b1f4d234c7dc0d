// Package prefs stores user preferences in their own slots, beside the
// transaction collection.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"hushbudget/internal/kv"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrInvalidTheme = errors.New("invalid theme")

// ThemeStore keeps the two-valued theme preference durable.
type ThemeStore struct {
	kv kv.Store
}

func NewThemeStore(kvs kv.Store) *ThemeStore {
	return &ThemeStore{kv: kvs}
}

// Get returns the saved theme. An absent or unrecognized value falls back to
// light.
func (t *ThemeStore) Get(ctx context.Context) (string, error) {
	value, ok, err := t.kv.Get(ctx, kv.ThemeKey)
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	if !ok || (value != ThemeLight && value != ThemeDark) {
		return ThemeLight, nil
	}
	return value, nil
}

// Set saves the theme; only light and dark are accepted.
func (t *ThemeStore) Set(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	if err := t.kv.Set(ctx, kv.ThemeKey, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
