package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnsupported is returned when no position provider is available.
var ErrUnsupported = errors.New("geolocation is not supported")

// PositionOptions mirrors a device "get current position" request.
type PositionOptions struct {
	EnableHighAccuracy bool
	// Timeout bounds the whole lookup. Zero means no limit.
	Timeout time.Duration
	// MaximumAge is how old a provider-cached position may be. Zero means a
	// fresh lookup.
	MaximumAge time.Duration
}

// DefaultPositionOptions are used by the Resolver.
var DefaultPositionOptions = PositionOptions{
	EnableHighAccuracy: true,
	Timeout:            5 * time.Second,
	MaximumAge:         0,
}

// Provider supplies a single live position fix.
type Provider interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Coordinates, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, opts PositionOptions) (Coordinates, error)

func (f ProviderFunc) CurrentPosition(ctx context.Context, opts PositionOptions) (Coordinates, error) {
	return f(ctx, opts)
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

const defaultIPAPIURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// IPProvider locates the machine from its public IP address using
// ip-api.com, a free service that requires no API key. IP lookups have a
// single accuracy level and are never served from a provider cache, so only
// opts.Timeout has an effect.
type IPProvider struct {
	// URL is the lookup endpoint. Exported for testing with httptest.
	URL    string
	client *http.Client
}

// NewIPProvider returns an IPProvider for ip-api.com.
func NewIPProvider() *IPProvider {
	return &IPProvider{
		URL:    defaultIPAPIURL,
		client: &http.Client{},
	}
}

func (p *IPProvider) CurrentPosition(ctx context.Context, opts PositionOptions) (Coordinates, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geolocation request failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Coordinates{}, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return Coordinates{}, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	c := Coordinates{Latitude: result.Lat, Longitude: result.Lon}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("geolocation returned invalid coordinates %s", c.Key())
	}
	return c, nil
}
