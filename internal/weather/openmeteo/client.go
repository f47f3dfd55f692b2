// Package openmeteo fetches current and hourly forecast data from the
// Open-Meteo API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MikaLeppala/uk-rail-departures/internal/httpx"
	"github.com/MikaLeppala/uk-rail-departures/internal/weather"
)

// Client implements the weather.Source interface for Open-Meteo.
type Client struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func New(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	return &Client{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: httpx.NewBreaker("openmeteo"),
	}
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Fetch(ctx context.Context, lat, lon float64) (weather.Observation, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "temperature_2m,apparent_temperature,precipitation,wind_speed_10m,wind_direction_10m,weather_code")
		values.Set("hourly", "temperature_2m,weather_code")
		values.Set("forecast_days", "2")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return weather.Observation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current *struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature_2m"`
			Apparent      float64 `json:"apparent_temperature"`
			Precipitation float64 `json:"precipitation"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			WindDirection float64 `json:"wind_direction_10m"`
			WeatherCode   int     `json:"weather_code"`
		} `json:"current"`
		// Older deployments expose current_weather instead of current.
		CurrentWeather *struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature"`
			WindSpeed     float64 `json:"windspeed"`
			WindDirection float64 `json:"winddirection"`
			WeatherCode   int     `json:"weathercode"`
		} `json:"current_weather"`
		Hourly struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature_2m"`
			WeatherCode []int     `json:"weather_code"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Observation{}, err
	}

	var cur weather.Current
	switch {
	case payload.Current != nil:
		cur = weather.Current{
			Time:         payload.Current.Time,
			TemperatureC: payload.Current.Temperature,
			ApparentC:    payload.Current.Apparent,
			PrecipMm:     payload.Current.Precipitation,
			WindSpeedKmh: payload.Current.WindSpeed,
			WindDirDeg:   payload.Current.WindDirection,
			Code:         payload.Current.WeatherCode,
		}
	case payload.CurrentWeather != nil:
		cur = weather.Current{
			Time:         payload.CurrentWeather.Time,
			TemperatureC: payload.CurrentWeather.Temperature,
			ApparentC:    payload.CurrentWeather.Temperature,
			WindSpeedKmh: payload.CurrentWeather.WindSpeed,
			WindDirDeg:   payload.CurrentWeather.WindDirection,
			Code:         payload.CurrentWeather.WeatherCode,
		}
	default:
		return weather.Observation{}, fmt.Errorf("openmeteo response has no current section")
	}
	cur.Condition = weather.ConditionForCode(cur.Code)

	return weather.Observation{
		Current:     cur,
		HourlyTimes: payload.Hourly.Time,
		HourlyTemps: payload.Hourly.Temperature,
		HourlyCodes: payload.Hourly.WeatherCode,
	}, nil
}
