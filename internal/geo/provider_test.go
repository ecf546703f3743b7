package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestProvider(url string) *IPProvider {
	p := NewIPProvider()
	p.URL = url
	return p
}

func TestIPProvider_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ipAPIResponse{
			Status: "success",
			Lat:    51.5074,
			Lon:    -0.1278,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c, err := newTestProvider(server.URL).CurrentPosition(context.Background(), DefaultPositionOptions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Latitude != 51.5074 {
		t.Errorf("Latitude = %v, want %v", c.Latitude, 51.5074)
	}
	if c.Longitude != -0.1278 {
		t.Errorf("Longitude = %v, want %v", c.Longitude, -0.1278)
	}
}

func TestIPProvider_APIFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ipAPIResponse{Status: "fail", Message: "reserved range"})
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).CurrentPosition(context.Background(), DefaultPositionOptions)
	if err == nil {
		t.Fatal("expected error for failed status, got nil")
	}
	if !strings.Contains(err.Error(), "reserved range") {
		t.Errorf("error should contain message, got: %v", err)
	}
}

func TestIPProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).CurrentPosition(context.Background(), DefaultPositionOptions)
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention 500, got: %v", err)
	}
}

func TestIPProvider_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).CurrentPosition(context.Background(), DefaultPositionOptions)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestIPProvider_OutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ipAPIResponse{Status: "success", Lat: 91, Lon: 0})
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).CurrentPosition(context.Background(), DefaultPositionOptions)
	if err == nil {
		t.Fatal("expected error for out-of-range latitude, got nil")
	}
}

func TestIPProvider_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	opts := DefaultPositionOptions
	opts.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := newTestProvider(server.URL).CurrentPosition(context.Background(), opts)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not honoured, took %v", elapsed)
	}
}

func TestIPProvider_ConnectionRefused(t *testing.T) {
	_, err := newTestProvider("http://127.0.0.1:1").CurrentPosition(context.Background(), DefaultPositionOptions)
	if err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}

func TestDefaultPositionOptions(t *testing.T) {
	if !DefaultPositionOptions.EnableHighAccuracy {
		t.Error("high accuracy should be enabled")
	}
	if DefaultPositionOptions.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", DefaultPositionOptions.Timeout)
	}
	if DefaultPositionOptions.MaximumAge != 0 {
		t.Errorf("MaximumAge = %v, want 0", DefaultPositionOptions.MaximumAge)
	}
}
