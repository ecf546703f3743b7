// Package timer persists the countdown-timer duration preference.
package timer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/prayer-segments/internal/kv"
)

const (
	// StoreKey holds the duration in whole minutes.
	StoreKey = "timer.duration"

	// DefaultMinutes is used when nothing valid is stored.
	DefaultMinutes = 25
)

// Duration returns the stored duration in minutes, or def when the value is
// missing, malformed or not positive.
func Duration(ctx context.Context, store kv.Store, def int) int {
	raw, err := store.Get(ctx, StoreKey)
	if err != nil {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// SetDuration stores minutes, which must be at least 1.
func SetDuration(ctx context.Context, store kv.Store, minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("invalid timer duration %d: must be at least 1 minute", minutes)
	}
	if err := store.Set(ctx, StoreKey, strconv.Itoa(minutes)); err != nil {
		return fmt.Errorf("failed to save timer duration: %w", err)
	}
	return nil
}

// Reset removes the stored duration so Duration returns its default.
func Reset(ctx context.Context, store kv.Store) error {
	if err := store.Remove(ctx, StoreKey); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("failed to reset timer duration: %w", err)
	}
	return nil
}
