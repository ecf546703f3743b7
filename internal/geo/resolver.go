package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-segments/internal/kv"
)

// StoreKey is where the last known location is persisted.
const StoreKey = "location.saved"

// Resolver determines the coordinates to use: saved, then live, then
// Fallback. Construct one per process and share it.
type Resolver struct {
	store    kv.Store
	provider Provider
	opts     PositionOptions
	log      zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// WithPositionOptions overrides DefaultPositionOptions.
func WithPositionOptions(o PositionOptions) Option {
	return func(r *Resolver) { r.opts = o }
}

// NewResolver returns a Resolver. A nil provider means live lookup is
// unsupported and always falls back.
func NewResolver(store kv.Store, provider Provider, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		provider: provider,
		opts:     DefaultPositionOptions,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve never fails. A live fix is persisted; the fallback is not.
func (r *Resolver) Resolve(ctx context.Context) Coordinates {
	if c, ok := r.Saved(ctx); ok {
		return c
	}

	c, err := r.live(ctx)
	if err != nil {
		r.log.Warn().Err(err).
			Float64("latitude", Fallback.Latitude).
			Float64("longitude", Fallback.Longitude).
			Msg("location unavailable, using fallback")
		return Fallback
	}

	if err := r.Save(ctx, c); err != nil {
		r.log.Warn().Err(err).Msg("failed to save location")
	}
	return c
}

func (r *Resolver) live(ctx context.Context) (Coordinates, error) {
	if r.provider == nil {
		return Coordinates{}, ErrUnsupported
	}
	c, err := r.provider.CurrentPosition(ctx, r.opts)
	if err != nil {
		return Coordinates{}, err
	}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("provider returned invalid coordinates %s", c.Key())
	}
	return c, nil
}

// Saved returns the persisted location if there is a valid one. Malformed
// stored data reads as absent.
func (r *Resolver) Saved(ctx context.Context) (Coordinates, bool) {
	raw, err := r.store.Get(ctx, StoreKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			r.log.Debug().Err(err).Msg("failed to read saved location")
		}
		return Coordinates{}, false
	}

	c, ok := decodeCoordinates(raw)
	if !ok {
		r.log.Debug().Str("value", raw).Msg("ignoring malformed saved location")
	}
	return c, ok
}

// Save persists c, overwriting any previous location.
func (r *Resolver) Save(ctx context.Context, c Coordinates) error {
	if !c.Valid() {
		return fmt.Errorf("invalid coordinates %s: latitude must be in [-90,90] and longitude in [-180,180]", c.Key())
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	return r.store.Set(ctx, StoreKey, string(data))
}

// ClearSaved removes the persisted location.
func (r *Resolver) ClearSaved(ctx context.Context) error {
	return r.store.Remove(ctx, StoreKey)
}
