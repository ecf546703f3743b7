package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.aladhan.com/v1"

	// DefaultMethod is the ISNA calculation method.
	DefaultMethod = 2
)

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
	// Method is the calculation method sent with every request.
	// Negative values omit the parameter and let the API choose.
	Method int
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		BaseURL: defaultBaseURL,
		Method:  DefaultMethod,
	}
}

// FetchByCoordinates fetches timings for the given date and coordinates.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	c.setMethod(params)

	return c.doRequest(ctx, endpoint, params)
}

// FetchByCity fetches timings for the given date, city, and country.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	c.setMethod(params)

	return c.doRequest(ctx, endpoint, params)
}

func (c *Client) setMethod(params url.Values) {
	if c.Method >= 0 {
		params.Set("method", strconv.Itoa(c.Method))
	}
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{URL: reqURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{URL: reqURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: reqURL, Err: fmt.Errorf("API request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{URL: reqURL, StatusCode: resp.StatusCode, Status: string(body)}
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, &FetchError{URL: reqURL, Err: fmt.Errorf("failed to decode API response: %w", err)}
	}

	if apiResp.Code != 200 {
		return nil, &FetchError{URL: reqURL, StatusCode: apiResp.Code, Status: apiResp.Status}
	}

	return &apiResp, nil
}
