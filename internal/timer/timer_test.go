package timer

import (
	"context"
	"testing"

	"github.com/smokyabdulrahman/prayer-segments/internal/kv"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		set    bool
		want   int
	}{
		{"missing", "", false, DefaultMinutes},
		{"stored", "45", true, 45},
		{"whitespace", " 30\n", true, 30},
		{"malformed", "half an hour", true, DefaultMinutes},
		{"zero", "0", true, DefaultMinutes},
		{"negative", "-5", true, DefaultMinutes},
		{"fractional", "2.5", true, DefaultMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kv.NewMemoryStore()
			if tt.set {
				if err := store.Set(ctx, StoreKey, tt.stored); err != nil {
					t.Fatal(err)
				}
			}
			if got := Duration(ctx, store, DefaultMinutes); got != tt.want {
				t.Errorf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetDuration(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	if err := SetDuration(ctx, store, 50); err != nil {
		t.Fatalf("SetDuration(50) error: %v", err)
	}
	raw, err := store.Get(ctx, StoreKey)
	if err != nil {
		t.Fatal(err)
	}
	if raw != "50" {
		t.Errorf("stored %q, want %q", raw, "50")
	}
	if got := Duration(ctx, store, DefaultMinutes); got != 50 {
		t.Errorf("Duration() = %d, want 50", got)
	}
}

func TestSetDuration_RejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := SetDuration(ctx, store, 10); err != nil {
		t.Fatal(err)
	}

	for _, m := range []int{0, -1} {
		if err := SetDuration(ctx, store, m); err == nil {
			t.Errorf("SetDuration(%d) should fail", m)
		}
	}
	if got := Duration(ctx, store, DefaultMinutes); got != 10 {
		t.Errorf("rejected value overwrote stored one: got %d", got)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := SetDuration(ctx, store, 10); err != nil {
		t.Fatal(err)
	}
	if err := Reset(ctx, store); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if got := Duration(ctx, store, DefaultMinutes); got != DefaultMinutes {
		t.Errorf("Duration() after reset = %d, want %d", got, DefaultMinutes)
	}
	if err := Reset(ctx, store); err != nil {
		t.Errorf("second Reset() error: %v", err)
	}
}
