// Package geocode resolves coordinates into a display place name.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// FallbackName is used when no address component is usable.
const FallbackName = "Your location"

// Reverse resolves a coordinate into a human-readable place name.
type Reverse interface {
	PlaceName(ctx context.Context, lat, lon float64) (string, error)
}

// Nominatim resolves place names against a Nominatim-style reverse
// geocoding endpoint. No API key required.
type Nominatim struct {
	client  *http.Client
	baseURL string
}

func NewNominatim(client *http.Client, baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org/reverse"
	}
	return &Nominatim{client: client, baseURL: baseURL}
}

func (n *Nominatim) PlaceName(ctx context.Context, lat, lon float64) (string, error) {
	values := url.Values{}
	values.Set("format", "jsonv2")
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))

	u := fmt.Sprintf("%s?%s", n.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "uk-rail-departures/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("reverse geocode status %d", resp.StatusCode)
	}

	var payload struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Hamlet  string `json:"hamlet"`
			County  string `json:"county"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	// Most specific usable component first.
	for _, name := range []string{
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Village,
		payload.Address.Hamlet,
		payload.Address.County,
	} {
		if name != "" {
			return name, nil
		}
	}
	return FallbackName, nil
}
