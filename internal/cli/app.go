package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-segments/internal/api"
	"github.com/smokyabdulrahman/prayer-segments/internal/config"
	"github.com/smokyabdulrahman/prayer-segments/internal/geo"
	"github.com/smokyabdulrahman/prayer-segments/internal/kv"
	"github.com/smokyabdulrahman/prayer-segments/internal/timings"
)

// app holds the collaborators for one CLI invocation. They are built once
// and passed explicitly to every command.
type app struct {
	version string
	flags   globalFlags

	// Overridable for tests.
	configPath string
	dotenv     []string
	lookupEnv  func(string) (string, bool)
	apiBaseURL string
	provider   geo.Provider
	now        func() time.Time

	fileConfig *config.Config
	cfg        *config.Config
	log        zerolog.Logger

	store    kv.Store
	resolver *geo.Resolver
	client   *api.Client
	timings  *timings.Service
	loc      *time.Location
}

func newApp(version string) *app {
	return &app{
		version:   version,
		lookupEnv: os.LookupEnv,
		provider:  geo.NewIPProvider(),
		now:       time.Now,
		log:       zerolog.Nop(),
	}
}

func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.Path()
}

// open builds the store and the services on top of it. A store that cannot
// be opened degrades to an in-memory one so the command still works.
func (a *app) open(ctx context.Context) error {
	if a.timings != nil {
		return nil
	}

	loc, err := a.cfg.Location()
	if err != nil {
		return err
	}
	a.loc = loc

	store, err := kv.Open(ctx, kv.Options{
		Backend:   a.cfg.Store,
		Path:      a.cfg.StorePath,
		RedisAddr: a.cfg.RedisAddr,
	})
	if err != nil {
		a.log.Warn().Err(err).Str("store", a.cfg.Store).Msg("store unavailable, using memory")
		store = kv.NewMemoryStore()
	}
	a.store = store

	a.client = api.NewClient()
	a.client.Method = a.cfg.MethodOrDefault(api.DefaultMethod)
	if a.apiBaseURL != "" {
		a.client.BaseURL = a.apiBaseURL
	}

	a.resolver = geo.NewResolver(store, a.provider,
		geo.WithLogger(a.log.With().Str("component", "geo").Logger()))

	a.timings = timings.New(ctx, store, a.client,
		timings.WithLogger(a.log.With().Str("component", "timings").Logger()),
		timings.WithClock(a.now),
		timings.WithLocation(loc),
	)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.timings = nil
	return err
}

// target describes the location timings are requested for.
type target struct {
	Query  timings.Query
	Source string // "config", "city", "saved", "detected" or "fallback"
}

// resolveTarget picks the location. Priority: configured coordinates >
// configured city > saved location > live provider > fallback.
func (a *app) resolveTarget(ctx context.Context) (target, error) {
	switch {
	case a.cfg.HasCoordinates():
		c := geo.Coordinates{Latitude: a.cfg.Latitude, Longitude: a.cfg.Longitude}
		return target{Query: timings.ByCoordinates(c), Source: "config"}, nil
	case a.cfg.HasCity():
		if a.cfg.Country == "" {
			return target{}, errors.New("--country is required when using --city")
		}
		return target{Query: timings.ByCity(a.cfg.City, a.cfg.Country), Source: "city"}, nil
	}

	if c, ok := a.resolver.Saved(ctx); ok {
		return target{Query: timings.ByCoordinates(c), Source: "saved"}, nil
	}
	c := a.resolver.Resolve(ctx)
	source := "detected"
	if _, ok := a.resolver.Saved(ctx); !ok {
		source = "fallback"
	}
	return target{Query: timings.ByCoordinates(c), Source: source}, nil
}

// describe renders a target for humans.
func (t target) describe() string {
	if t.Query.IsCity() {
		return t.Query.City + ", " + t.Query.Country
	}
	c := t.Query.Coordinates
	return fmt.Sprintf("%.4f, %.4f (%s)", c.Latitude, c.Longitude, t.Source)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
