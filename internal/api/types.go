package api

import "fmt"

// Response represents the top-level Al Adhan API response.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds the day's timings. The API returns much more (Hijri date,
// meta); only the timings are used.
type Data struct {
	Timings Timings `json:"timings"`
}

// Timings contains the six markers that bound the day's segments, as HH:MM
// strings. The API may include a timezone suffix like " (BST)" which is
// stripped during parsing.
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// FetchError reports a failed timings request: a transport failure, a non-200
// HTTP status, an undecodable body, or a non-200 code in the body.
type FetchError struct {
	URL        string
	StatusCode int // HTTP status or body code; 0 for transport/decode failures
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetch timings: %v", e.Err)
	case e.Status != "":
		return fmt.Sprintf("fetch timings: API error: code=%d status=%s", e.StatusCode, e.Status)
	default:
		return fmt.Sprintf("fetch timings: API returned status %d", e.StatusCode)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
