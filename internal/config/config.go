package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Upstream endpoints.
	DeparturesBaseURL string
	OpenMeteoBaseURL  string
	NominatimBaseURL  string
	GeolocateURL      string

	// GeocoderAPIKey switches reverse geocoding to the Google backend.
	GeocoderAPIKey string

	// Poll cadence.
	DeparturePollInterval time.Duration
	WeatherPollInterval   time.Duration

	// MaxServices caps the services shown per board.
	MaxServices int

	// Fixed coordinate override; when unset the host is geolocated.
	WeatherLat *float64
	WeatherLon *float64

	HTTPTimeout   time.Duration
	LocateTimeout time.Duration
	StateDir      string
	Port          string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DeparturesBaseURL = getenvDefault("DEPARTURES_BASE_URL", "https://huxley2.azurewebsites.net")
	cfg.OpenMeteoBaseURL = getenvDefault("OPEN_METEO_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org/reverse")
	cfg.GeolocateURL = getenvDefault("GEOLOCATE_URL", "http://ip-api.com/json")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	cfg.DeparturePollInterval, err = getenvDuration("DEPARTURE_POLL_INTERVAL", "30s")
	if err != nil {
		return nil, err
	}
	cfg.WeatherPollInterval, err = getenvDuration("WEATHER_POLL_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.LocateTimeout, err = getenvDuration("LOCATE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cfg.MaxServices = getenvInt("MAX_SERVICES", 8)
	cfg.StateDir = getenvDefault("STATE_DIR", "data")
	cfg.Port = getenvDefault("PORT", "8080")

	if lat, lon, ok, err := loadFixedCoordinate(); err != nil {
		return nil, err
	} else if ok {
		cfg.WeatherLat = &lat
		cfg.WeatherLon = &lon
	}

	return cfg, nil
}

func loadFixedCoordinate() (float64, float64, bool, error) {
	latStr := os.Getenv("WEATHER_LAT")
	lonStr := os.Getenv("WEATHER_LON")
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, false, fmt.Errorf("WEATHER_LAT and WEATHER_LON must be set together")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid WEATHER_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid WEATHER_LON: %w", err)
	}
	return lat, lon, true, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
