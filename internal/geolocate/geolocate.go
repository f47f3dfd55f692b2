package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Locator resolves the host's approximate coordinates.
type Locator interface {
	Locate(ctx context.Context) (Point, error)
}

// HTTPLocator resolves coordinates from an IP-geolocation endpoint.
// The lookup is a single, short attempt; callers fall back to defaults
// on any failure, so there is no retry here.
type HTTPLocator struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// New creates an HTTPLocator against the given base URL
// (e.g. http://ip-api.com/json).
func New(client *http.Client, baseURL string, timeout time.Duration) *HTTPLocator {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPLocator{client: client, baseURL: baseURL, timeout: timeout}
}

func (l *HTTPLocator) Locate(ctx context.Context) (Point, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return Point{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("location unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Point{}, fmt.Errorf("location unavailable: status %d", resp.StatusCode)
	}

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Point{}, fmt.Errorf("location unavailable: %w", err)
	}
	if payload.Status != "" && payload.Status != "success" {
		return Point{}, fmt.Errorf("location unavailable: %s", payload.Message)
	}

	return Point{Lat: payload.Lat, Lon: payload.Lon}, nil
}
