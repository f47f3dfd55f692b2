package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MikaLeppala/uk-rail-departures/internal/weather"
)

const samplePayload = `{
  "current": {
    "time": "2024-03-01T14:15",
    "temperature_2m": 11.4,
    "apparent_temperature": 9.1,
    "precipitation": 0.2,
    "wind_speed_10m": 17.3,
    "wind_direction_10m": 245,
    "weather_code": 61
  },
  "hourly": {
    "time": ["2024-03-01T14:00", "2024-03-01T15:00"],
    "temperature_2m": [11.2, 10.8],
    "weather_code": [61, 63]
  }
}`

const legacyPayload = `{
  "current_weather": {
    "time": "2024-03-01T14:15",
    "temperature": 11.4,
    "windspeed": 17.3,
    "winddirection": 245,
    "weathercode": 3
  },
  "hourly": {
    "time": ["2024-03-01T14:00"],
    "temperature_2m": [11.2],
    "weather_code": [3]
  }
}`

func TestFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	obs, err := c.Fetch(context.Background(), 51.5072, -0.1276)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obs.Current.TemperatureC != 11.4 || obs.Current.ApparentC != 9.1 {
		t.Errorf("unexpected current: %+v", obs.Current)
	}
	if obs.Current.Condition != weather.ConditionRain {
		t.Errorf("expected rain condition for code 61, got %s", obs.Current.Condition)
	}
	if len(obs.HourlyTimes) != 2 || len(obs.HourlyTemps) != 2 || len(obs.HourlyCodes) != 2 {
		t.Errorf("unexpected hourly arrays: %+v", obs)
	}
	for _, part := range []string{"latitude=", "longitude=", "current=", "hourly="} {
		if !strings.Contains(gotQuery, part) {
			t.Errorf("query missing %q: %s", part, gotQuery)
		}
	}
}

func TestFetchLegacyCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(legacyPayload))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	obs, err := c.Fetch(context.Background(), 51.5072, -0.1276)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.Current.TemperatureC != 11.4 {
		t.Errorf("unexpected temperature %f", obs.Current.TemperatureC)
	}
	if obs.Current.Condition != weather.ConditionCloudy {
		t.Errorf("expected cloudy for code 3, got %s", obs.Current.Condition)
	}
}

func TestFetchMissingCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {"time": [], "temperature_2m": [], "weather_code": []}}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	if _, err := c.Fetch(context.Background(), 51.5072, -0.1276); err == nil {
		t.Fatal("expected error for missing current section")
	}
}
