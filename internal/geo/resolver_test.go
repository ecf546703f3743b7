package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-segments/internal/kv"
)

type countingProvider struct {
	calls int
	opts  PositionOptions
	c     Coordinates
	err   error
}

func (p *countingProvider) CurrentPosition(_ context.Context, opts PositionOptions) (Coordinates, error) {
	p.calls++
	p.opts = opts
	return p.c, p.err
}

func TestResolve_SavedLocationSkipsProvider(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, StoreKey, `{"latitude":21.4225,"longitude":39.8262}`))

	p := &countingProvider{c: Coordinates{Latitude: 1, Longitude: 1}}
	got := NewResolver(store, p).Resolve(ctx)

	assert.Equal(t, Coordinates{Latitude: 21.4225, Longitude: 39.8262}, got)
	assert.Equal(t, 0, p.calls)
}

func TestResolve_InvalidSavedFallsThrough(t *testing.T) {
	tests := []struct {
		name  string
		saved string
	}{
		{"latitude out of range", `{"latitude":91,"longitude":0}`},
		{"longitude out of range", `{"latitude":0,"longitude":181}`},
		{"malformed json", `{latitude`},
		{"missing field", `{"latitude":10}`},
		{"non-numeric", `{"latitude":"10","longitude":"20"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kv.NewMemoryStore()
			require.NoError(t, store.Set(ctx, StoreKey, tt.saved))

			live := Coordinates{Latitude: 51.5074, Longitude: -0.1278}
			p := &countingProvider{c: live}
			got := NewResolver(store, p).Resolve(ctx)

			assert.Equal(t, live, got)
			assert.Equal(t, 1, p.calls)
		})
	}
}

func TestResolve_LiveFixIsPersisted(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	live := Coordinates{Latitude: 51.5074, Longitude: -0.1278}
	p := &countingProvider{c: live}
	r := NewResolver(store, p)

	assert.Equal(t, live, r.Resolve(ctx))
	assert.Equal(t, DefaultPositionOptions, p.opts)

	saved, ok := r.Saved(ctx)
	require.True(t, ok)
	assert.Equal(t, live, saved)

	// Second resolve is served from the store.
	assert.Equal(t, live, r.Resolve(ctx))
	assert.Equal(t, 1, p.calls)
}

func TestResolve_ProviderFailureUsesFallback(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	p := &countingProvider{err: errors.New("permission denied")}

	got := NewResolver(store, p).Resolve(ctx)
	assert.Equal(t, Fallback, got)
	assert.Equal(t, 43.6532, got.Latitude)
	assert.Equal(t, -79.3832, got.Longitude)

	_, err := store.Get(ctx, StoreKey)
	assert.ErrorIs(t, err, kv.ErrNotFound, "fallback must not be persisted")
}

func TestResolve_InvalidLiveFixUsesFallback(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	p := &countingProvider{c: Coordinates{Latitude: 95, Longitude: 0}}

	assert.Equal(t, Fallback, NewResolver(store, p).Resolve(ctx))
	_, err := store.Get(ctx, StoreKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestResolve_NilProvider(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	assert.Equal(t, Fallback, NewResolver(store, nil).Resolve(ctx))
}

func TestResolve_CustomPositionOptions(t *testing.T) {
	ctx := context.Background()
	p := &countingProvider{c: Coordinates{Latitude: 1, Longitude: 2}}
	opts := PositionOptions{Timeout: 1}

	NewResolver(kv.NewMemoryStore(), p, WithPositionOptions(opts)).Resolve(ctx)
	assert.Equal(t, opts, p.opts)
}

func TestSave_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(kv.NewMemoryStore(), nil)

	err := r.Save(ctx, Coordinates{Latitude: -91, Longitude: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")

	_, ok := r.Saved(ctx)
	assert.False(t, ok)
}

func TestClearSaved(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(kv.NewMemoryStore(), nil)

	require.NoError(t, r.Save(ctx, Coordinates{Latitude: 10, Longitude: 20}))
	_, ok := r.Saved(ctx)
	require.True(t, ok)

	require.NoError(t, r.ClearSaved(ctx))
	_, ok = r.Saved(ctx)
	assert.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, r.ClearSaved(ctx))
}

func TestCoordinatesKey(t *testing.T) {
	tests := []struct {
		c    Coordinates
		want string
	}{
		{Fallback, "43.6532,-79.3832"},
		{Coordinates{Latitude: 0, Longitude: 0}, "0,0"},
		{Coordinates{Latitude: 21.5, Longitude: 39}, "21.5,39"},
	}
	for _, tt := range tests {
		if got := tt.c.Key(); got != tt.want {
			t.Errorf("Key() = %q, want %q", got, tt.want)
		}
	}
}

func TestCoordinatesValid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"origin", Coordinates{}, true},
		{"north pole", Coordinates{Latitude: 90, Longitude: 180}, true},
		{"south pole", Coordinates{Latitude: -90, Longitude: -180}, true},
		{"lat too high", Coordinates{Latitude: 90.0001}, false},
		{"lng too low", Coordinates{Longitude: -180.0001}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
