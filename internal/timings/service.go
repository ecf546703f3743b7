// Package timings fetches the day's prayer markers and caches them per date
// and location in a kv.Store.
package timings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-segments/internal/api"
	"github.com/smokyabdulrahman/prayer-segments/internal/geo"
	"github.com/smokyabdulrahman/prayer-segments/internal/kv"
	"github.com/smokyabdulrahman/prayer-segments/internal/segment"
)

// StoreKey holds the whole cache map as one JSON blob.
const StoreKey = "timings.cache"

const dateLayout = "2006-01-02"

// Fetcher retrieves timings from the remote API. *api.Client implements it.
type Fetcher interface {
	FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64) (*api.Response, error)
	FetchByCity(ctx context.Context, date time.Time, city, country string) (*api.Response, error)
}

// Query selects the location to fetch timings for: coordinates, or a city
// and country when City is set.
type Query struct {
	Coordinates geo.Coordinates
	City        string
	Country     string
}

// ByCoordinates returns a coordinate query.
func ByCoordinates(c geo.Coordinates) Query {
	return Query{Coordinates: c}
}

// ByCity returns a city/country query.
func ByCity(city, country string) Query {
	return Query{City: city, Country: country}
}

// IsCity reports whether q uses the city endpoint.
func (q Query) IsCity() bool {
	return q.City != ""
}

// Key is the location part of a cache key.
func (q Query) Key() string {
	if q.IsCity() {
		return q.City + "," + q.Country
	}
	return q.Coordinates.Key()
}

// Entry is one cached day of timings.
type Entry struct {
	Date      string      `json:"date"` // YYYY-MM-DD
	Location  string      `json:"location"`
	Timings   api.Timings `json:"timings"`
	FetchedAt int64       `json:"fetchedAt"` // epoch millis
}

// CacheKey builds the "{date}|{location}" map key.
func CacheKey(date string, q Query) string {
	return date + "|" + q.Key()
}

// Service is the timings fetcher and its cache. Construct one per process
// and share it; it is safe for concurrent use. Concurrent misses for the same
// key each fetch, and the last write wins.
type Service struct {
	store   kv.Store
	fetcher Fetcher
	log     zerolog.Logger
	now     func() time.Time
	loc     *time.Location

	mu      sync.Mutex
	entries map[string]Entry
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone used to decide calendar dates. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New returns a Service, loading any persisted cache from store. A missing
// or malformed blob starts an empty cache.
func New(ctx context.Context, store kv.Store, fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		store:   store,
		fetcher: fetcher,
		log:     zerolog.Nop(),
		now:     time.Now,
		loc:     time.Local,
		entries: make(map[string]Entry),
	}
	for _, o := range opts {
		o(s)
	}
	s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) {
	raw, err := s.store.Get(ctx, StoreKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Debug().Err(err).Msg("failed to read timings cache")
		}
		return
	}

	var entries map[string]Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Debug().Err(err).Msg("ignoring malformed timings cache")
		return
	}
	if entries != nil {
		s.entries = entries
	}
}

// Timings returns the markers for q on date. A cached entry is used only
// when its date is today's local calendar date, so asking for any other day
// always fetches. Fetch failures are returned as *api.FetchError and nothing
// is cached.
func (s *Service) Timings(ctx context.Context, q Query, date time.Time) (api.Timings, error) {
	day := date.In(s.loc).Format(dateLayout)
	key := CacheKey(day, q)

	s.mu.Lock()
	entry, ok := s.entries[key]
	s.mu.Unlock()

	if ok && s.isToday(entry.Date) {
		s.log.Debug().Str("key", key).Msg("using cached timings")
		return entry.Timings, nil
	}

	s.log.Debug().Str("key", key).Msg("fetching timings")
	resp, err := s.fetch(ctx, q, date)
	if err != nil {
		return api.Timings{}, err
	}

	entry = Entry{
		Date:      day,
		Location:  q.Key(),
		Timings:   resp.Data.Timings,
		FetchedAt: s.now().UnixMilli(),
	}

	s.mu.Lock()
	s.entries[key] = entry
	data, err := json.Marshal(s.entries)
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Msg("failed to marshal timings cache")
		return entry.Timings, nil
	}
	if err := s.store.Set(ctx, StoreKey, string(data)); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist timings cache")
	}
	return entry.Timings, nil
}

func (s *Service) fetch(ctx context.Context, q Query, date time.Time) (*api.Response, error) {
	if q.IsCity() {
		return s.fetcher.FetchByCity(ctx, date, q.City, q.Country)
	}
	return s.fetcher.FetchByCoordinates(ctx, date, q.Coordinates.Latitude, q.Coordinates.Longitude)
}

// isToday reports whether a stored YYYY-MM-DD date is today's local date.
func (s *Service) isToday(stored string) bool {
	d, err := time.ParseInLocation(dateLayout, stored, s.loc)
	if err != nil {
		return false
	}
	now := s.now().In(s.loc)
	y1, m1, d1 := d.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Segments fetches the timings for at's day and splits it into segments.
func (s *Service) Segments(ctx context.Context, q Query, at time.Time) (segment.Result, error) {
	at = at.In(s.loc)
	t, err := s.Timings(ctx, q, at)
	if err != nil {
		return segment.Result{}, err
	}
	r, err := segment.Compute(t, at)
	if err != nil {
		return segment.Result{}, fmt.Errorf("invalid timings for %s: %w", q.Key(), err)
	}
	return r, nil
}

// Len returns the number of cached entries, stale ones included.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ClearCache empties the cache and removes the persisted blob.
func (s *Service) ClearCache(ctx context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.mu.Unlock()

	if err := s.store.Remove(ctx, StoreKey); err != nil {
		return fmt.Errorf("failed to clear timings cache: %w", err)
	}
	return nil
}
