package geocode

import (
	"context"
	"fmt"

	"github.com/kelvins/geocoder"
)

// Google resolves place names through the Google Geocoding API. Used
// instead of Nominatim when an API key is configured.
type Google struct{}

func NewGoogle(apiKey string) *Google {
	geocoder.ApiKey = apiKey
	return &Google{}
}

func (g *Google) PlaceName(_ context.Context, lat, lon float64) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	for _, addr := range addresses {
		for _, name := range []string{addr.City, addr.District, addr.County, addr.State} {
			if name != "" {
				return name, nil
			}
		}
	}
	return FallbackName, nil
}
